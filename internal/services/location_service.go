package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benmeehan/wifi-location/internal/models"
	"github.com/benmeehan/wifi-location/pkg/location"
)

// APIKeyReader supplies the Geolocation API key.
type APIKeyReader interface {
	ReadAPIKey() (string, error)
}

// ProviderFactory builds a location provider authenticated with apiKey.
type ProviderFactory func(apiKey string) (location.Provider, error)

// LocationService estimates the location of a single Wi-Fi access point.
type LocationService struct {
	// Dependencies
	credentials APIKeyReader
	newProvider ProviderFactory
	logger      zerolog.Logger
}

// NewLocationService creates a new LocationService instance with the provided dependencies.
func NewLocationService(credentials APIKeyReader, newProvider ProviderFactory, logger zerolog.Logger) *LocationService {
	return &LocationService{
		credentials: credentials,
		newProvider: newProvider,
		logger:      logger,
	}
}

// EstimateLocation looks up the access point identified by macAddress.
//
// Credential and input problems are returned as errors and no request is
// made. Failures of the lookup itself are logged and reported as a nil
// result, as is a response without a location.
func (l *LocationService) EstimateLocation(ctx context.Context, macAddress string, signalStrength int) (*models.LocationResult, error) {
	logger := l.logger.With().
		Str("request_id", uuid.NewString()).
		Str("mac_address", macAddress).
		Int("signal_strength", signalStrength).
		Logger()

	apiKey, err := l.credentials.ReadAPIKey()
	if err != nil {
		return nil, err
	}

	ap, err := location.ParseAccessPoint(macAddress, signalStrength)
	if err != nil {
		return nil, err
	}

	provider, err := l.newProvider(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create location provider: %w", err)
	}

	loc, err := provider.GetLocation(ctx, ap)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Error requesting location")
		return nil, nil
	}

	if loc == nil {
		logger.Info().Msg("Geolocation response did not contain a location")
		return nil, nil
	}

	result := &models.LocationResult{
		Lat:      loc.Latitude,
		Lng:      loc.Longitude,
		Accuracy: loc.Accuracy,
	}

	logger.Debug().
		Float64("lat", result.Lat).
		Float64("lng", result.Lng).
		Float64("accuracy", result.Accuracy).
		Msg("Location estimated")
	return result, nil
}
