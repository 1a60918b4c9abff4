package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tournevent/aramexbridge/pkg/shipper"
	"gopkg.in/yaml.v3"
)

// EnvSettings serves the Aramex account from the environment configuration.
type EnvSettings struct {
	Aramex AramexConfig
}

// Get returns the configured credentials. Unset fields stay empty.
func (s EnvSettings) Get() shipper.Credentials {
	return shipper.Credentials{
		Username:           s.Aramex.Username,
		Password:           s.Aramex.Password,
		AccountNumber:      s.Aramex.AccountNumber,
		AccountPin:         s.Aramex.AccountPin,
		AccountEntity:      s.Aramex.AccountEntity,
		AccountCountryCode: s.Aramex.AccountCountryCode,
		TestMode:           s.Aramex.TestMode,
	}
}

// FileSettings is the account loaded from a YAML settings file.
type FileSettings struct {
	Credentials shipper.Credentials
}

// Get implements the settings provider contract.
func (s FileSettings) Get() shipper.Credentials {
	return s.Credentials
}

type settingsDocument struct {
	Aramex shipper.Credentials `yaml:"aramex"`
}

// LoadSettingsFile reads Aramex credentials from a YAML file of the form
//
//	aramex:
//	  username: api@example.com
//	  account_number: "20016"
//	  test_mode: true
//
// A missing file yields test-mode settings with empty credentials.
func LoadSettingsFile(path string) (FileSettings, error) {
	doc := settingsDocument{Aramex: shipper.Credentials{TestMode: true}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileSettings{Credentials: doc.Aramex}, nil
		}
		return FileSettings{}, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return FileSettings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return FileSettings{Credentials: doc.Aramex}, nil
}
