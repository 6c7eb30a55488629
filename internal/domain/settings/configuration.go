package settings

import "github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/shared"

// Configuration is a named runtime tunable. Values are stored as strings
// and parsed by the consumer; Active rows win over caller fallbacks,
// inactive rows surface the fallback instead of their stored value.
type Configuration struct {
	shared.BaseEntity
	Name      string `json:"name"`
	Value     string `json:"value"`
	Active    bool   `json:"active"`
	UpdatedBy string `json:"updatedBy"`
}

// NewConfiguration creates an active configuration row.
func NewConfiguration(name, value, updatedBy string) *Configuration {
	return &Configuration{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Value:      value,
		Active:     true,
		UpdatedBy:  updatedBy,
	}
}
