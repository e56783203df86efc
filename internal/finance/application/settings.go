package application

import (
	"os"

	"gopkg.in/yaml.v3"

	finance "practice-cloud/internal/finance/domain"
)

// ServiceTypeSetting configures one offered service and its duration.
type ServiceTypeSetting struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
}

// Settings holds the practice's configurable catalog: the service types
// offered and the expense categories used by the breakdown reports.
type Settings struct {
	ServiceTypes []ServiceTypeSetting `yaml:"service_types"`
	Categories   []string             `yaml:"categories"`
}

// DefaultSettings is used when no settings file is configured.
func DefaultSettings() Settings {
	return Settings{
		ServiceTypes: []ServiceTypeSetting{
			{ID: "st_1", Name: "Psicoterapia Individual", Duration: 50},
			{ID: "st_2", Name: "Psicoterapia em Grupo", Duration: 90},
			{ID: "st_3", Name: "Supervisão", Duration: 60},
			{ID: "st_4", Name: "Consultoria", Duration: 60},
		},
		Categories: []string{"Aluguel", "Internet", "Material", "Impostos", "Outros"},
	}
}

// LoadSettings reads the settings yaml named by PRACTICE_SETTINGS, or
// returns the defaults when the variable is unset. Missing sections in
// the file fall back to the defaults.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()
	path := os.Getenv("PRACTICE_SETTINGS")
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return settings, err
	}
	if len(loaded.ServiceTypes) > 0 {
		settings.ServiceTypes = loaded.ServiceTypes
	}
	if len(loaded.Categories) > 0 {
		settings.Categories = loaded.Categories
	}
	return settings, nil
}

// ServiceTypeRecords converts the configured service types into domain
// records for the duration index.
func (s Settings) ServiceTypeRecords() []finance.ServiceType {
	records := make([]finance.ServiceType, 0, len(s.ServiceTypes))
	for _, st := range s.ServiceTypes {
		records = append(records, finance.ServiceType{ID: st.ID, Name: st.Name, Duration: st.Duration})
	}
	return records
}
