package location

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoAccessPoints is returned when a scan finds no usable access point.
var ErrNoAccessPoints = errors.New("no Wi-Fi access points found")

// ParseAccessPoint validates mac and builds an AccessPoint from it.
func ParseAccessPoint(mac string, signalStrength int) (AccessPoint, error) {
	mac = strings.ToLower(strings.TrimSpace(mac))
	if !ValidateMAC(mac) {
		return AccessPoint{}, fmt.Errorf("invalid MAC address %q, expected six colon separated hex octets", mac)
	}
	return AccessPoint{MACAddress: mac, SignalStrength: signalStrength}, nil
}

// ValidateMAC checks if the MAC address is in a valid format (e.g., "00:14:22:01:23:45").
func ValidateMAC(mac string) bool {
	parts := strings.Split(mac, ":")
	if len(parts) != 6 {
		return false
	}
	for _, part := range parts {
		if len(part) != 2 {
			return false
		}
		if _, err := strconv.ParseUint(part, 16, 8); err != nil {
			return false
		}
	}
	return true
}

// ScanAccessPoints retrieves nearby WiFi access points using nmcli.
func ScanAccessPoints(ctx context.Context) ([]AccessPoint, error) {
	// Verify nmcli is available
	if _, err := exec.LookPath("nmcli"); err != nil {
		return nil, fmt.Errorf("nmcli not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "nmcli", "-t", "-f", "BSSID,SIGNAL", "dev", "wifi", "list")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run nmcli: %w", err)
	}

	return ParseNmcliOutput(string(output))
}

// ParseNmcliOutput parses terse "BSSID:SIGNAL" lines as printed by
// `nmcli -t -f BSSID,SIGNAL`. Colons inside the BSSID arrive escaped as "\:".
// Malformed lines are skipped.
func ParseNmcliOutput(output string) ([]AccessPoint, error) {
	var aps []AccessPoint
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		sep := strings.LastIndex(line, ":")
		if sep <= 0 {
			continue
		}

		mac := strings.ReplaceAll(line[:sep], `\:`, ":")
		quality, err := strconv.Atoi(strings.TrimSpace(line[sep+1:]))
		if err != nil || quality < 0 || quality > 100 {
			continue
		}

		ap, err := ParseAccessPoint(mac, QualityToDBm(quality))
		if err != nil {
			continue
		}
		aps = append(aps, ap)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan nmcli output: %w", err)
	}

	return aps, nil
}

// QualityToDBm converts an nmcli signal quality percentage into dBm
// (100% is -50 dBm, 0% is -100 dBm).
func QualityToDBm(quality int) int {
	return quality/2 - 100
}

// StrongestAccessPoint returns the access point with the highest signal strength.
func StrongestAccessPoint(aps []AccessPoint) (AccessPoint, error) {
	if len(aps) == 0 {
		return AccessPoint{}, ErrNoAccessPoints
	}

	best := aps[0]
	for _, ap := range aps[1:] {
		if ap.SignalStrength > best.SignalStrength {
			best = ap
		}
	}
	return best, nil
}
