package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridgen/internal/ir"
)

const goodSource = `pub fn add(a: i32, b: i32) -> Result<i32> {}

pub struct Point {
    pub x: f64,
    pub y: f64,
}

pub fn origin() -> Result<Point> {}
`

// writeTestCrate lays out a minimal crate and returns the api.rs path.
func writeTestCrate(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"my-app\"\n"), 0o644))
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	input := filepath.Join(srcDir, "api.rs")
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))
	return input
}

// runCommand executes the CLI with the given args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readEnvelope(t *testing.T, path string) *ExtractEnvelope {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var env ExtractEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	return &env
}

func TestExtractWritesEnvelope(t *testing.T) {
	input := writeTestCrate(t, goodSource)

	out, err := runCommand(t, "extract", "-i", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 2 function(s), 1 struct(s)")
	assert.Contains(t, out, "MyApp")

	env := readEnvelope(t, filepath.Join(filepath.Dir(input), "bridgen_ir.json"))
	assert.Equal(t, ir.ToolVersion, env.Meta.ToolVersion)
	assert.Equal(t, "MyApp", env.Meta.ClassName)
	assert.Equal(t, ir.SourceHash([]byte(goodSource)), env.Meta.SourceHash)
	assert.False(t, env.Meta.Cached)
	require.Len(t, env.IR.Funcs, 2)
	assert.Equal(t, "add", env.IR.Funcs[0].Name)
	assert.Contains(t, env.IR.StructPool, "Point")
}

func TestExtractExplicitOutput(t *testing.T) {
	input := writeTestCrate(t, goodSource)
	output := filepath.Join(t.TempDir(), "ir.json")

	_, err := runCommand(t, "extract", "-i", input, "-o", output, "--class-name", "Custom")
	require.NoError(t, err)

	env := readEnvelope(t, output)
	assert.Equal(t, "Custom", env.Meta.ClassName)
}

func TestExtractJSONFormat(t *testing.T) {
	input := writeTestCrate(t, goodSource)
	output := filepath.Join(t.TempDir(), "ir.json")

	out, err := runCommand(t, "--format", "json", "extract", "-i", input, "-o", output)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestExtractCacheRoundTrip(t *testing.T) {
	input := writeTestCrate(t, goodSource)
	cacheDir := t.TempDir()
	output := filepath.Join(t.TempDir(), "ir.json")

	_, err := runCommand(t, "extract", "-i", input, "-o", output, "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.False(t, readEnvelope(t, output).Meta.Cached)

	out, err := runCommand(t, "extract", "-i", input, "-o", output, "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Served from extraction cache")

	env := readEnvelope(t, output)
	assert.True(t, env.Meta.Cached)
	require.Len(t, env.IR.Funcs, 2)
	assert.Contains(t, env.IR.StructPool, "Point")
}

func TestExtractMissingInputFlag(t *testing.T) {
	_, err := runCommand(t, "extract")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExtractInputNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.rs")
	out, err := runCommand(t, "extract", "-i", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestExtractUnsupportedTypeExitsOne(t *testing.T) {
	input := writeTestCrate(t, "pub fn f(a: usize) -> Result<i32> {}\n")

	out, err := runCommand(t, "extract", "-i", input)
	require.Error(t, err)
	assert.Equal(t, ExitSourceError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeUnsupportedType)

	// A failed run must not leave an output document behind.
	_, statErr := os.Stat(filepath.Join(filepath.Dir(input), "bridgen_ir.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractSyntaxErrorExitsOne(t *testing.T) {
	input := writeTestCrate(t, "pub fn broken(a: i32 -> Result<i32> {}\n")

	out, err := runCommand(t, "extract", "-i", input)
	require.Error(t, err)
	assert.Equal(t, ExitSourceError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeSyntax)
}

func TestExtractConfigFile(t *testing.T) {
	input := writeTestCrate(t, goodSource)
	output := filepath.Join(t.TempDir(), "from_config.json")
	configPath := filepath.Join(t.TempDir(), "bridgen.yaml")
	configBody := "input: " + input + "\noutput: " + output + "\nclass_name: FromConfig\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0o644))

	_, err := runCommand(t, "extract", "-c", configPath)
	require.NoError(t, err)

	env := readEnvelope(t, output)
	assert.Equal(t, "FromConfig", env.Meta.ClassName)
}

func TestExtractConfigFileNotFound(t *testing.T) {
	out, err := runCommand(t, "extract", "-c", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestExtractPrettyOutput(t *testing.T) {
	input := writeTestCrate(t, goodSource)
	output := filepath.Join(t.TempDir(), "ir.json")

	_, err := runCommand(t, "extract", "-i", input, "-o", output, "--pretty")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"meta\"")
}

func TestExtractStreamFunction(t *testing.T) {
	input := writeTestCrate(t, "pub fn ticks(sink: StreamSink<i64>) {}\n")
	output := filepath.Join(t.TempDir(), "ir.json")

	_, err := runCommand(t, "extract", "-i", input, "-o", output)
	require.NoError(t, err)

	env := readEnvelope(t, output)
	require.Len(t, env.IR.Funcs, 1)
	assert.Equal(t, ir.ModeStream, env.IR.Funcs[0].Mode)
	assert.Empty(t, env.IR.Funcs[0].Inputs)
}
