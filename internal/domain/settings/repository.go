package settings

import "context"

// ConfigurationRepository provides access to configuration rows.
// FindByName returns (nil, nil) when the name is unknown.
type ConfigurationRepository interface {
	Save(ctx context.Context, cfg *Configuration) error
	FindByName(ctx context.Context, name string) (*Configuration, error)
}
