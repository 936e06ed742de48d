package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benmeehan/wifi-location/pkg/location"
)

func TestValidateMAC(t *testing.T) {
	tests := []struct {
		mac   string
		valid bool
	}{
		{"00:14:22:01:23:45", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee", false},
		{"aa:bb:cc:dd:ee:ff:00", false},
		{"aa-bb-cc-dd-ee-ff", false},
		{"aa:bb:cc:dd:ee:fg", false},
		{"a:bb:cc:dd:ee:ff", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mac, func(t *testing.T) {
			assert.Equal(t, tt.valid, location.ValidateMAC(tt.mac))
		})
	}
}

// TestParseAccessPoint normalises the MAC and keeps the signal untouched.
func TestParseAccessPoint(t *testing.T) {
	ap, err := location.ParseAccessPoint(" AA:BB:CC:DD:EE:FF ", -90)
	require.NoError(t, err)
	assert.Equal(t, location.AccessPoint{MACAddress: "aa:bb:cc:dd:ee:ff", SignalStrength: -90}, ap)

	_, err = location.ParseAccessPoint("not-a-mac", -90)
	assert.Error(t, err)
}

// TestParseNmcliOutput handles escaped colons and skips junk lines.
func TestParseNmcliOutput(t *testing.T) {
	output := `AA\:BB\:CC\:DD\:EE\:FF:80
11\:22\:33\:44\:55\:66:40
garbage
12\:34:50
AA\:BB\:CC\:DD\:EE\:01:abc
AA\:BB\:CC\:DD\:EE\:02:150
`
	aps, err := location.ParseNmcliOutput(output)
	require.NoError(t, err)
	assert.Equal(t, []location.AccessPoint{
		{MACAddress: "aa:bb:cc:dd:ee:ff", SignalStrength: -60},
		{MACAddress: "11:22:33:44:55:66", SignalStrength: -80},
	}, aps)
}

func TestQualityToDBm(t *testing.T) {
	assert.Equal(t, -50, location.QualityToDBm(100))
	assert.Equal(t, -75, location.QualityToDBm(50))
	assert.Equal(t, -100, location.QualityToDBm(0))
}

func TestStrongestAccessPoint(t *testing.T) {
	_, err := location.StrongestAccessPoint(nil)
	assert.ErrorIs(t, err, location.ErrNoAccessPoints)

	best, err := location.StrongestAccessPoint([]location.AccessPoint{
		{MACAddress: "11:22:33:44:55:66", SignalStrength: -80},
		{MACAddress: "aa:bb:cc:dd:ee:ff", SignalStrength: -60},
		{MACAddress: "00:11:22:33:44:55", SignalStrength: -70},
	})
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", best.MACAddress)
}
