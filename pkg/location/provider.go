package location

import "context"

// Provider interface defines the methods for location providers.
// A nil Location with a nil error means the provider answered but could not
// place the access point.
type Provider interface {
	GetLocation(ctx context.Context, ap AccessPoint) (*Location, error)
}
