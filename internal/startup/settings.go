package startup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"showroom-gallery/internal/contact"
	"showroom-gallery/internal/logging"
	"showroom-gallery/internal/manifest"
)

// Settings is the optional YAML settings file: showroom reference data that
// changes rarely but should not require a rebuild. Omitted sections fall
// back to the built-in defaults.
type Settings struct {
	Rules   manifest.Rules  `yaml:"rules"`
	Contact contact.Contact `yaml:"contact"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings(phone string) Settings {
	return Settings{
		Rules:   manifest.DefaultRules(),
		Contact: contact.New(phone),
	}
}

// LoadSettings reads the settings file at path and merges it over the
// defaults. An empty path returns the defaults unchanged.
func LoadSettings(path, phone string) (Settings, error) {
	settings := DefaultSettings(phone)
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if file.Rules.Sentinel != "" {
		settings.Rules.Sentinel = file.Rules.Sentinel
	}
	if len(file.Rules.Categories) > 0 {
		settings.Rules.Categories = file.Rules.Categories
	}
	if len(file.Rules.NamePrefixes) > 0 {
		settings.Rules.NamePrefixes = file.Rules.NamePrefixes
	}
	if file.Contact.Phone != "" {
		settings.Contact.Phone = file.Contact.Phone
	}
	if file.Contact.QuoteTemplate != "" {
		settings.Contact.QuoteTemplate = file.Contact.QuoteTemplate
	}
	if file.Contact.InquiryTemplate != "" {
		settings.Contact.InquiryTemplate = file.Contact.InquiryTemplate
	}

	logging.Info("Settings loaded from %s (%d categories)", path, len(settings.Rules.Categories))
	return settings, nil
}
