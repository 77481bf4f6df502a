package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--"+flagLogLevel, "error"))
	err := root.Execute()
	return out.String(), err
}

func TestReplayScenario(t *testing.T) {
	out, err := execute(t, "replay", filepath.Join("testdata", "council.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "step 1 deploy creator: ok initialized")
	assert.Contains(t, out, "step 6 join bob: failed as expected")
	assert.Contains(t, out, "step 12 execute alice: ok executed")
	assert.Contains(t, out, "step 15 vote alice: failed as expected")
}

func TestReplayStopsOnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - {action: deploy, from: creator, at: 1756857600}
  - {action: join, from: alice, tier: 3, at: 1756857600}
`), 0o600))

	_, err := execute(t, "replay", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (join by alice)")
	assert.Contains(t, err.Error(), "unknown tier 3")
}

func TestSponsorDepositFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sponsor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - {action: deploy, from: creator, at: 1756857600}
  - {action: fund, account: bob, amount: 100}
  - {action: join, from: bob, tier: 1, at: 1756857600, expect: fail, error: exactly 10}
`), 0o600))

	t.Setenv("COUNCIL_SPONSOR_DEPOSIT", "9")
	_, err := execute(t, "replay", path)
	require.NoError(t, err)
}

// TestCommandsShareDataDir checks separate invocations see the same leveldb state.
func TestCommandsShareDataDir(t *testing.T) {
	dir := t.TempDir()
	run := func(args ...string) string {
		out, err := execute(t, append(args, "--"+flagDataDir, dir)...)
		require.NoError(t, err, args)
		return out
	}

	run("deploy", "--from", "creator", "--at", "1756857600")
	run("fund", "bob", "50")
	run("join", "--from", "bob", "--tier", "1", "--at", "1756857600")
	out := run("propose", "--from", "bob", "--title", "rename", "--description", "new name", "--at", "1756857600")
	assert.Contains(t, out, "log pc|id:1|by:bob|t:governance|am:0")
	run("vote", "1", "yes", "--from", "bob", "--at", "1756857600")

	out = run("show", "1", "--from", "anyone", "--at", "1756857601")
	assert.Contains(t, out, `"votes":{"yes":10,"no":0,"abstain":0},"status":"active"`)

	_, err := execute(t, "execute", "1", "--from", "bob", "--at", "1756857601", "--"+flagDataDir, dir)
	assert.ErrorContains(t, err, "rejected: state: voting on proposal 1 open until")
}

func TestFromIsRequired(t *testing.T) {
	_, err := execute(t, "vote", "1", "yes")
	assert.ErrorContains(t, err, "--from is required")
}
