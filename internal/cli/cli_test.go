package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/semmy-space/coda/internal/config"
	"github.com/semmy-space/coda/internal/credstore"
	"github.com/semmy-space/coda/internal/output"
	"github.com/semmy-space/coda/internal/secrets"
)

// testEnv wires commands to a temp credential file, an in-memory session
// store and buffers in place of the terminal.
type testEnv struct {
	path    string
	svc     *credstore.Service
	cfg     *config.Config
	con     *Console
	console *bytes.Buffer
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	fp      *FormatterProvider
	sp      *SessionProvider
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users_database.txt")
	env := &testEnv{
		path:    path,
		svc:     credstore.NewService(credstore.NewFileStore(path, zap.NewNop()), zap.NewNop()),
		cfg:     &config.Config{},
		console: &bytes.Buffer{},
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		sp:      NewSessionProviderFrom(secrets.NewKeyringStoreFrom(keyring.NewArrayKeyring(nil))),
	}
	env.con = NewConsole(strings.NewReader(input), env.console)
	env.setMode("plain")
	return env
}

func (e *testEnv) setMode(mode string) {
	e.fp = &FormatterProvider{Formatter: output.NewWithWriters(mode, e.stdout, e.stderr), Mode: mode}
}

func (e *testEnv) register(t *testing.T, id, secret string) {
	t.Helper()
	require.NoError(t, e.svc.Register(context.Background(), id, secret, secret))
}

func requireExitCode(t *testing.T, err error, code int) *output.CLIError {
	t.Helper()
	var cliErr *output.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, code, cliErr.ExitCode, "message: %s", cliErr.Message)
	return cliErr
}

func TestParseAndRunVersion(t *testing.T) {
	t.Setenv("CODA_CONFIG", filepath.Join(t.TempDir(), "config.json5"))

	var buf bytes.Buffer
	root := &CLI{}
	parser, err := kong.New(root,
		kong.Name("coda"),
		kong.Vars{"version": "1.2.3"},
		kong.Writers(&buf, &buf),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"version"})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())
	assert.Equal(t, "coda version 1.2.3\n", buf.String())
}

func TestParseBindsStoreFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CODA_CONFIG", filepath.Join(dir, "config.json5"))
	store := filepath.Join(dir, "db.txt")

	root := &CLI{}
	parser, err := kong.New(root,
		kong.Vars{"version": "test"},
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--store", store, "--output", "json", "--no-input", "auth", "register", "alice1"})
	require.NoError(t, err)
	assert.Equal(t, store, root.Store)

	// --no-input makes the secret prompt fail before anything is written
	err = kctx.Run()
	requireExitCode(t, err, output.ExitUsage)
	_, statErr := os.Stat(store)
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	t.Setenv("CODA_CONFIG", path)

	parser, err := kong.New(&CLI{}, kong.Vars{"version": "test"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"auth", "users"})
	requireExitCode(t, err, output.ExitConfigError)
}

func TestResolvedOutput(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		configured string
		expected   string
	}{
		{name: "flag wins", flag: "json", configured: "rich", expected: "json"},
		{name: "configured default", flag: "auto", configured: "plain", expected: "plain"},
		{name: "configured json", flag: "auto", configured: "json", expected: "json"},
		// go test output is not a terminal
		{name: "auto without tty", flag: "auto", configured: "", expected: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Globals{Output: tt.flag}
			assert.Equal(t, tt.expected, g.ResolvedOutput(tt.configured))
		})
	}
}
