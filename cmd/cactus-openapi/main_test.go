package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreapi "github.com/hyperledger/cactus-core-api-go"
	"github.com/hyperledger/cactus-core-api-go/openapi"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExport_DefaultDestination(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "json", "generated"), 0o755))
	t.Chdir(dir)

	_, logs, err := run(t)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "json", "generated", "openapi-spec.json"))
	require.NoError(t, err)
	want, err := coreapi.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
	assert.Contains(t, logs, coreapi.DefaultDestination)
}

func TestExport_ExplicitDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.json")

	_, logs, err := run(t, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	want, err := coreapi.JSON()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Contains(t, logs, "ExportToFileSystemAsJSON")
	assert.Contains(t, logs, dest)
}

func TestExport_YAMLByExtension(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.yaml")

	_, _, err := run(t, dest)
	require.NoError(t, err)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	doc, err := openapi.ParseYAML(b)
	require.NoError(t, err)
	assert.Equal(t, coreapi.OpenAPIVersion, doc.OpenAPI)
	assert.Len(t, doc.Components.Schemas, len(coreapi.Document().Components.Schemas))
}

func TestExport_FormatFlagWins(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.yaml")

	_, _, err := run(t, "--format", "json", dest)
	require.NoError(t, err)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("{")))

	_, _, err = run(t, "--format", "xml", dest)
	assert.ErrorContains(t, err, "unknown format")
}

func TestExport_Errors(t *testing.T) {
	_, _, err := run(t, filepath.Join(t.TempDir(), "missing", "out.json"))
	assert.Error(t, err)

	_, _, err = run(t, "a.json", "b.json")
	assert.Error(t, err)
}

func TestExport_JSONLogs(t *testing.T) {
	t.Setenv("CACTUS_OPENAPI_LOG_FORMAT", "json")
	dest := filepath.Join(t.TempDir(), "out.json")

	_, logs, err := run(t, dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(logs, "{"), "logs: %s", logs)
	assert.Contains(t, logs, `"digest":"sha256:`)
}

func TestExport_InvalidConfig(t *testing.T) {
	t.Setenv("CACTUS_OPENAPI_LOG_LEVEL", "loud")
	_, _, err := run(t, filepath.Join(t.TempDir(), "out.json"))
	assert.ErrorContains(t, err, "log.level")
}

const validDatabase = `
consortium:
  - id: consortium-1
    name: Example
    mainApiHost: https://cactus.example.com
    memberIds: [member-a]
ledger:
  - id: besu-1
    ledgerType: BESU_2X
    consortiumMemberId: member-a
consortiumMember:
  - id: member-a
    name: Member A
    nodeIds: [node-a]
cactusNode:
  - id: node-a
    consortiumId: consortium-1
    memberId: member-a
    nodeApiHost: https://a.example.com
    publicKeyPem: PEM
    pluginInstanceIds: []
    ledgerIds: [besu-1]
pluginInstance: []
`

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "db.yaml")
	require.NoError(t, os.WriteFile(good, []byte(validDatabase), 0o644))

	_, _, err := run(t, "check", good)
	require.NoError(t, err)

	dangling := filepath.Join(dir, "dangling.yaml")
	require.NoError(t, os.WriteFile(dangling, []byte(strings.Replace(validDatabase, "ledgerIds: [besu-1]", "ledgerIds: [besu-9]", 1)), 0o644))
	out, _, err := run(t, "check", dangling)
	assert.ErrorContains(t, err, "1 issue(s) found")
	assert.Contains(t, out, "unresolved_ref at /cactusNode/0/ledgerIds/0")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(strings.Replace(validDatabase, "BESU_2X", "BITCOIN", 1)), 0o644))
	out, _, err = run(t, "check", invalid)
	assert.Error(t, err)
	assert.Contains(t, out, "invalid_enum at /ledger/0/ledgerType")

	extra := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(validDatabase+"unexpected: true\n"), 0o644))
	_, _, err = run(t, "check", extra)
	require.NoError(t, err)
	out, _, err = run(t, "check", "--strict", extra)
	assert.Error(t, err)
	assert.Contains(t, out, "unknown_key at /unexpected")
}

func TestCheck_StrictIsTopLevelOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.yaml")
	nested := strings.Replace(validDatabase, "consortiumMemberId: member-a", "consortiumMemberId: member-a\n    region: eu", 1)
	require.NoError(t, os.WriteFile(path, []byte(nested), 0o644))

	_, _, err := run(t, "check", "--strict", path)
	require.NoError(t, err)
	assert.Contains(t, newCheckCommand().Flags().Lookup("strict").Usage, "top-level")
}

func TestHelp_DefaultDestination(t *testing.T) {
	long := newRootCommand(io.Discard, io.Discard).Long
	assert.Contains(t, long, coreapi.DefaultDestination)
	assert.Contains(t, long, "working directory")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Hyperledger Core API 0.2.0 (OpenAPI 3.0.3)\n", out)
}

func TestCheck_JSONDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	db := `{"consortium":[],"ledger":[],"consortiumMember":[],"cactusNode":[],"pluginInstance":[],"ledger":[]}`
	require.NoError(t, os.WriteFile(path, []byte(db), 0o644))

	out, _, err := run(t, "check", path)
	assert.Error(t, err)
	assert.Contains(t, out, "duplicate_key at /ledger")
}
