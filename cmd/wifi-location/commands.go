package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/benmeehan/wifi-location/internal/services"
	"github.com/benmeehan/wifi-location/internal/utils"
	"github.com/benmeehan/wifi-location/pkg/file"
	"github.com/benmeehan/wifi-location/pkg/location"
)

const (
	defaultMACAddress     = "aa:bb:cc:dd:ee:ff"
	defaultSignalStrength = -90
)

// options holds the parsed command line flags.
type options struct {
	macAddress     string
	signalStrength int
	scan           bool
	configPath     string
	endpoint       string
	timeout        time.Duration
	logLevel       string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wifi-location",
		Short: "Estimate a location from a Wi-Fi access point",
		Long: `Estimate a geographic location from a single Wi-Fi access point's
MAC address and signal strength using the Google Geolocation API.

The API key is read from the configuration file (see 'wifi-location config path').
On first run the file is created with a placeholder that must be replaced.`,
		Example: `  # Look up the default access point
  wifi-location

  # Look up a specific access point
  wifi-location --mac 00:14:22:01:23:45 --signal -65

  # Use the strongest access point reported by nmcli
  wifi-location --scan`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Configuration file path (default: platform config directory)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.Flags().StringVar(&opts.macAddress, "mac", defaultMACAddress, "MAC address of the Wi-Fi access point, six colon separated hex octets (e.g. 00:14:22:01:23:45)")
	cmd.Flags().IntVar(&opts.signalStrength, "signal", defaultSignalStrength, "Signal strength of the access point in dBm")
	cmd.Flags().BoolVar(&opts.scan, "scan", false, "Use the strongest access point found by nmcli")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", location.DefaultBaseURL, "Geolocation API base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", location.DefaultTimeout, "Geolocation request timeout (0 disables)")
	cmd.MarkFlagsMutuallyExclusive("scan", "mac")
	cmd.MarkFlagsMutuallyExclusive("scan", "signal")

	cmd.AddCommand(newConfigCmd(opts, stdout))
	return cmd
}

func newConfigCmd(opts *options, stdout io.Writer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := services.NewCredentialStore(utils.EnvironmentFromOS(), opts.configPath, file.NewFileService(), zerolog.Nop())
			path, err := store.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, path)
			return nil
		},
	})

	return configCmd
}

// newLogger builds a console logger on w at the named level.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func runEstimate(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	macAddress, signalStrength := opts.macAddress, opts.signalStrength
	if opts.scan {
		aps, err := location.ScanAccessPoints(ctx)
		if err != nil {
			return fmt.Errorf("failed to scan access points: %w", err)
		}
		ap, err := location.StrongestAccessPoint(aps)
		if err != nil {
			return err
		}
		macAddress, signalStrength = ap.MACAddress, ap.SignalStrength
		logger.Info().
			Str("mac_address", macAddress).
			Int("signal_strength", signalStrength).
			Msg("Using strongest access point")
	}

	store := services.NewCredentialStore(utils.EnvironmentFromOS(), opts.configPath, file.NewFileService(), logger)
	locationService := services.NewLocationService(store, func(apiKey string) (location.Provider, error) {
		return location.NewGoogleGeolocationProvider(apiKey,
			location.WithBaseURL(opts.endpoint),
			location.WithTimeout(opts.timeout),
		)
	}, logger)

	result, err := locationService.EstimateLocation(ctx, macAddress, signalStrength)
	if err != nil {
		return err
	}

	if result == nil {
		fmt.Fprintln(stdout, "Location could not be determined.")
		return nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	fmt.Fprintf(stdout, "Estimated location: %s\n", encoded)
	return nil
}
