package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name         string
		fileContent  *string
		wantInput    string
		wantOutput   string
		wantExcluded []string
		wantLevel    string
		wantSource   string
	}{
		{
			name:         "Default values only",
			wantInput:    "docs.txt",
			wantOutput:   "props.json",
			wantExcluded: DefaultExcludedComponents,
			wantLevel:    "warn",
			wantSource:   "default",
		},
		{
			name:         "YAML file",
			fileContent:  strPtr("input: docs/all.mdx\noutput: build/props.json\nexcluded_components:\n  - Intro\nlog_level: debug\n"),
			wantInput:    "docs/all.mdx",
			wantOutput:   "build/props.json",
			wantExcluded: []string{"Intro"},
			wantLevel:    "debug",
			wantSource:   "file",
		},
		{
			name:         "JSON file with partial settings",
			fileContent:  strPtr(`{"output": "out.json"}`),
			wantInput:    "docs.txt",
			wantOutput:   "out.json",
			wantExcluded: DefaultExcludedComponents,
			wantLevel:    "warn",
			wantSource:   "file",
		},
		{
			name:         "Empty exclusion list clears defaults",
			fileContent:  strPtr("excluded_components: []\n"),
			wantInput:    "docs.txt",
			wantOutput:   "props.json",
			wantExcluded: []string{},
			wantLevel:    "warn",
			wantSource:   "file",
		},
		{
			name:         "Empty file",
			fileContent:  strPtr(""),
			wantInput:    "docs.txt",
			wantOutput:   "props.json",
			wantExcluded: DefaultExcludedComponents,
			wantLevel:    "warn",
			wantSource:   "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.fileContent != nil {
				require.NoError(t, afero.WriteFile(fs, DefaultSettingsFile, []byte(*tt.fileContent), 0o644))
			}

			s, err := LoadSettings(fs, DefaultSettingsFile, false)
			require.NoError(t, err)

			assert.Equal(t, tt.wantInput, s.InputPath)
			assert.Equal(t, tt.wantOutput, s.OutputPath)
			assert.Equal(t, tt.wantExcluded, s.ExcludedComponents)
			assert.Equal(t, tt.wantLevel, s.LogLevel)
			assert.Equal(t, tt.wantSource, s.Source)
		})
	}
}

func TestLoadSettings_UnknownKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultSettingsFile, []byte("ouput: typo.json\n"), 0o644))

	_, err := LoadSettings(fs, DefaultSettingsFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultSettingsFile)
}

func TestLoadSettings_MustExist(t *testing.T) {
	_, err := LoadSettings(afero.NewMemMapFs(), "custom.yaml", true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettings_DefaultsAreCopied(t *testing.T) {
	s, err := LoadSettings(afero.NewMemMapFs(), DefaultSettingsFile, false)
	require.NoError(t, err)

	s.ExcludedComponents[0] = "Mutated"
	assert.Equal(t, "QueryFunctions", DefaultExcludedComponents[0])
}

func TestCreateDefaultSettings_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultSettingsFile, CreateDefaultSettings(), 0o644))

	s, err := LoadSettings(fs, DefaultSettingsFile, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultExcludedComponents, s.ExcludedComponents)
	assert.Equal(t, "docs.txt", s.InputPath)
}

func strPtr(s string) *string { return &s }
