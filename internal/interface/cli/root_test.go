package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const chartDocs = "---\n" +
	"title: \"Chart\"\n" +
	"---\n" +
	"# Bar\n" +
	"<PropListing name=\"color\" description=\"fill color\" />\n"

func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRoot(fs)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_DefaultRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))

	stdout, _, err := execute(t, fs)
	require.NoError(t, err)

	assert.Equal(t, "Bar: 1\nTotal Props: 1\nProps JSON generated and saved to props.json.\n", stdout)

	data, err := afero.ReadFile(fs, "props.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Bar":{"props":[{"name":"color","description":"fill color","required":false,"type":"string","options":null,"defaultValue":null}]}}`, string(data))
}

func TestRoot_FlagsOverrideSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "all.mdx", []byte(chartDocs), 0o644))
	require.NoError(t, afero.WriteFile(fs, "propdoc.yaml", []byte("input: missing.txt\noutput: from-settings.json\n"), 0o644))

	stdout, _, err := execute(t, fs, "--input", "all.mdx")
	require.NoError(t, err)
	assert.Contains(t, stdout, "saved to from-settings.json.")

	exists, err := afero.Exists(fs, "from-settings.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRoot_SettingsExcludeComponents(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))
	require.NoError(t, afero.WriteFile(fs, "propdoc.yaml", []byte("excluded_components: [Bar]\n"), 0o644))

	stdout, _, err := execute(t, fs)
	require.NoError(t, err)
	assert.Equal(t, "Total Props: 0\nProps JSON generated and saved to props.json.\n", stdout)

	data, err := afero.ReadFile(fs, "props.json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestRoot_DryRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))

	stdout, stderr, err := execute(t, fs, "--dry-run")
	require.NoError(t, err)

	assert.JSONEq(t, `{"Bar":{"props":[{"name":"color","description":"fill color","required":false,"type":"string","options":null,"defaultValue":null}]}}`, stdout)
	assert.Contains(t, stderr, "Bar: 1\nTotal Props: 1\n")

	exists, err := afero.Exists(fs, "props.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoot_DryRunFailure(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := execute(t, fs, "--dry-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReported)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, false, doc["success"])
	assert.Contains(t, doc["error"], "failed to read docs.txt")

	assert.Contains(t, stderr, "An error occurred: failed to read docs.txt")
}

func TestRoot_MissingInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "props.json", []byte("stale"), 0o644))

	stdout, stderr, err := execute(t, fs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReported)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "An error occurred: failed to read docs.txt")

	data, err := afero.ReadFile(fs, "props.json")
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))
}

func TestRoot_ExplicitConfigMustExist(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))

	_, stderr, err := execute(t, fs, "--config", "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, stderr, "An error occurred: failed to read nope.yaml")
}

func TestRoot_DebugLogging(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))

	_, stderr, err := execute(t, fs, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "DEBUG: run ")
	assert.Contains(t, stderr, "settings source=default")
}

func TestInit(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, _, err := execute(t, fs, "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote propdoc.yaml\n", stdout)

	data, err := afero.ReadFile(fs, "propdoc.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "QueryFunctions")

	_, _, err = execute(t, fs, "init")
	assert.Error(t, err, "init should refuse to overwrite")

	_, _, err = execute(t, fs, "init", "--force")
	assert.NoError(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LogLevelDebug},
		{in: "INFO", want: LogLevelInfo},
		{in: " warning ", want: LogLevelWarn},
		{in: "error", want: LogLevelError},
		{in: "", want: LogLevelWarn},
		{in: "verbose", want: LogLevelWarn, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "debug", LogLevelDebug.String())
	assert.Equal(t, "error", LogLevelError.String())
	assert.Equal(t, "LogLevel(9)", LogLevel(9).String())
}

func TestRoot_UnknownLogLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs.txt", []byte(chartDocs), 0o644))

	_, stderr, err := execute(t, fs, "--log-level", "verbose")
	require.Error(t, err)
	assert.Contains(t, stderr, `An error occurred: unknown log level "verbose"`)

	exists, err := afero.Exists(fs, "props.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLogger_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(LogLevelWarn, buf)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("shown %d", 3)
	logger.Error("shown %d", 4)

	assert.Equal(t, "WARN: shown 3\nERROR: shown 4\n", buf.String())

	logger.SetLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, logger.GetLevel())
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible\n")
}
