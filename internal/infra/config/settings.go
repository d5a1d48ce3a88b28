package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read from the working directory when present
const DefaultSettingsFile = "propdoc.yaml"

// DefaultExcludedComponents lists documentation sections that describe
// charts generally rather than a single component
var DefaultExcludedComponents = []string{
	"QueryFunctions",
	"EvidenceDocs",
	"ThemesandLayouts",
	"Mixed-TypeCharts",
	"Chart`<Chart>`",
	"Line`<Line/>`",
	"Area`<Area/>`",
	"Bar`<Bar/>`",
	"Scatter`<Scatter/>`",
	"Bubble`<Bubble/>`",
	"Hist`<Hist/>`",
}

// RawSettings represents the structure of the settings file.
// Nil fields fall back to defaults.
type RawSettings struct {
	Input              *string   `yaml:"input"`
	Output             *string   `yaml:"output"`
	ExcludedComponents *[]string `yaml:"excluded_components"`
	LogLevel           *string   `yaml:"log_level"`
}

// Settings is the resolved configuration for a run
type Settings struct {
	InputPath          string
	OutputPath         string
	ExcludedComponents []string
	LogLevel           string

	Source      string // "file" or "default"
	SettingPath string
}

// LoadSettings loads configuration from a YAML (or JSON) settings file.
// A missing file yields defaults unless mustExist is set.
// Priority: settings file > defaults
func LoadSettings(fs afero.Fs, path string, mustExist bool) (*Settings, error) {
	settings := &RawSettings{}
	source := "default"
	settingPath := ""

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := decodeStrict(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		source = "file"
		settingPath = path
	case errors.Is(err, os.ErrNotExist) && !mustExist:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	applyDefaults(settings)

	excluded := make([]string, len(*settings.ExcludedComponents))
	copy(excluded, *settings.ExcludedComponents)

	return &Settings{
		InputPath:          *settings.Input,
		OutputPath:         *settings.Output,
		ExcludedComponents: excluded,
		LogLevel:           *settings.LogLevel,
		Source:             source,
		SettingPath:        settingPath,
	}, nil
}

// decodeStrict rejects unknown keys so typos do not silently fall back to defaults
func decodeStrict(data []byte, settings *RawSettings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	if settings.Input == nil {
		v := "docs.txt"
		settings.Input = &v
	}
	if settings.Output == nil {
		v := "props.json"
		settings.Output = &v
	}
	if settings.ExcludedComponents == nil {
		v := append([]string(nil), DefaultExcludedComponents...)
		settings.ExcludedComponents = &v
	}
	if settings.LogLevel == nil {
		v := "warn"
		settings.LogLevel = &v
	}
}

// CreateDefaultSettings renders a settings file holding every default
func CreateDefaultSettings() []byte {
	settings := &RawSettings{}
	applyDefaults(settings)

	data, _ := yaml.Marshal(settings)
	return data
}
