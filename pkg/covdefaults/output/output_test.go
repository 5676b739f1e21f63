package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *Result {
	return &Result{
		ConfigPath: ".coverage.toml",
		Changes: []Change{
			{Key: "report:fail_under", Old: nil, New: 100},
			{Key: "run:branch", Old: false, New: true},
		},
		Source:          []string{"/home/me/project"},
		Omit:            []string{"*/.nox/*", "*/.tox/*", "*/__main__.py", "*/setup.py"},
		ExcludeLines:    []string{`# pragma: no cover\b`},
		PartialBranches: []string{`# pragma: no branch\b`},
		Paths: map[string][]string{
			"mypkg": {"src/mypkg", "venv/lib/python3.12/site-packages/mypkg"},
		},
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"pretty", "plain", "json", "yaml", "patterns"} {
		f, err := Get(name)
		require.NoError(t, err, "formatter %s should be registered", name)
		assert.NotNil(t, f)
	}

	_, err := Get("nonexistent")
	assert.Error(t, err)

	available := Available()
	assert.Contains(t, available, "pretty")
	assert.Contains(t, available, "patterns")
	assert.IsIncreasing(t, available)
}

func TestPlainFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := (&PlainFormatter{}).Format(&buf, sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "config: .coverage.toml")
	assert.Contains(t, out, "run:branch: false -> true")
	assert.Contains(t, out, "report:fail_under = 100")
	assert.Contains(t, out, "*/setup.py")
	assert.Contains(t, out, "mypkg:")
	assert.NotContains(t, out, "dry run")
}

func TestPlainFormatterDryRun(t *testing.T) {
	r := sampleResult()
	r.DryRun = true

	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, r))
	assert.Contains(t, buf.String(), "dry run: no changes written")
}

// Long list values collapse to a count in the change log so a fresh
// config's 25-pattern exclude list does not flood the output.
func TestPlainFormatterSummarizesLongLists(t *testing.T) {
	r := &Result{
		Changes: []Change{
			{Key: "report:exclude_lines", New: []string{"a", "b", "c", "d", "e"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, r))
	assert.Contains(t, buf.String(), "report:exclude_lines = [5 patterns]")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, ".coverage.toml", decoded["config_path"])
	assert.Len(t, decoded["changes"], 2)
	assert.Len(t, decoded["omit"], 4)
}

func TestJSONFormatterOmitsEmptyPaths(t *testing.T) {
	r := sampleResult()
	r.Paths = nil

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "paths")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, ".coverage.toml", decoded["config_path"])
	assert.Len(t, decoded["changes"], 2)
}

func TestPatternsFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PatternsFormatter{}).Format(&buf, sampleResult()))

	assert.Equal(t, "*/.nox/*\n*/.tox/*\n*/__main__.py\n*/setup.py\n", buf.String())
}

func TestPatternsFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PatternsFormatter{}).Format(&buf, &Result{}))
	assert.Empty(t, buf.String())
}

func TestPrettyFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PrettyFormatter{}).Format(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, ".coverage.toml")
	assert.Contains(t, out, "run:branch")
}
