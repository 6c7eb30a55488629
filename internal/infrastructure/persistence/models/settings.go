package models

import "github.com/tshepo-desh-mathabe/invoice-tracker/internal/domain/settings"

// ConfigurationModel is the persistence model for the Configuration domain entity.
type ConfigurationModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_configurations_name"`
	Value     string `gorm:"type:varchar(255);not null"`
	Active    bool   `gorm:"not null;default:true"`
	UpdatedBy string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ConfigurationModel) TableName() string {
	return "configurations"
}

// ToDomain converts the persistence model to a domain Configuration entity.
func (m *ConfigurationModel) ToDomain() *settings.Configuration {
	return &settings.Configuration{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Value:      m.Value,
		Active:     m.Active,
		UpdatedBy:  m.UpdatedBy,
	}
}

// FromDomain populates the persistence model from a domain Configuration entity.
func (m *ConfigurationModel) FromDomain(c *settings.Configuration) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Value = c.Value
	m.Active = c.Active
	m.UpdatedBy = c.UpdatedBy
}
