package location

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

const (
	// DefaultBaseURL is the host serving the Google Geolocation API.
	DefaultBaseURL = "https://www.googleapis.com"
	// DefaultTimeout bounds a single geolocation round trip.
	DefaultTimeout = 10 * time.Second

	geolocatePath = "/geolocation/v1/geolocate"

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20
)

// StatusError is returned when the geolocation endpoint answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string // Message from the API error body, if any
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("geolocation request failed with status %d", e.Code)
	}
	return fmt.Sprintf("geolocation request failed with status %d: %s", e.Code, e.Message)
}

// GoogleGeolocationProvider uses the Google Geolocation API to get location data.
type GoogleGeolocationProvider struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a GoogleGeolocationProvider.
type Option func(*GoogleGeolocationProvider)

// WithBaseURL points the provider at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(g *GoogleGeolocationProvider) {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout overrides DefaultTimeout. A zero or negative value disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(g *GoogleGeolocationProvider) {
		g.timeout = timeout
	}
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GoogleGeolocationProvider) {
		g.httpClient = c
	}
}

// wifiAccessPoint is the access point descriptor sent to the API. Unlike
// maps.WiFiAccessPoint it always carries signalStrength, 0 dBm included.
type wifiAccessPoint struct {
	MACAddress     string `json:"macAddress"`
	SignalStrength int    `json:"signalStrength"`
}

// geolocationRequest is the request body; only Wi-Fi access points are sent.
type geolocationRequest struct {
	WiFiAccessPoints []wifiAccessPoint `json:"wifiAccessPoints"`
}

// geolocationResponse mirrors maps.GeolocationResult but keeps Location
// nullable so a missing location can be told apart from 0,0.
type geolocationResponse struct {
	Location *maps.LatLng `json:"location"`
	Accuracy float64      `json:"accuracy"`
}

type geolocationErrorResponse struct {
	Error maps.GeolocationError `json:"error"`
}

// NewGoogleGeolocationProvider creates a new GoogleGeolocationProvider instance.
func NewGoogleGeolocationProvider(apiKey string, opts ...Option) (*GoogleGeolocationProvider, error) {
	if apiKey == "" {
		return nil, errors.New("geolocation API key is empty")
	}

	g := &GoogleGeolocationProvider{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}

	if _, err := url.Parse(g.baseURL); err != nil {
		return nil, fmt.Errorf("invalid geolocation base URL %q: %w", g.baseURL, err)
	}

	return g, nil
}

// GetLocation sends one geolocation request describing ap and returns the
// estimated location. It returns (nil, nil) when the response has no location.
func (g *GoogleGeolocationProvider) GetLocation(ctx context.Context, ap AccessPoint) (*Location, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body, err := json.Marshal(geolocationRequest{
		WiFiAccessPoints: []wifiAccessPoint{{
			MACAddress:     ap.MACAddress,
			SignalStrength: ap.SignalStrength,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode geolocation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send geolocation request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read geolocation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, payload)
	}

	var result geolocationResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Location == nil {
		return nil, nil
	}

	return &Location{
		Latitude:  result.Location.Lat,
		Longitude: result.Location.Lng,
		Accuracy:  result.Accuracy,
	}, nil
}

// endpoint returns the geolocate URL with the API key as query parameter.
func (g *GoogleGeolocationProvider) endpoint() string {
	q := url.Values{}
	q.Set("key", g.apiKey)
	return g.baseURL + geolocatePath + "?" + q.Encode()
}

// newStatusError extracts the API error message from payload when it has one.
func newStatusError(code int, payload []byte) *StatusError {
	var apiErr geolocationErrorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &StatusError{Code: code, Message: apiErr.Error.Message}
	}
	return &StatusError{Code: code, Message: strings.TrimSpace(string(payload))}
}
