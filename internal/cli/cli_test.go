package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig creates a config file pointing at a fresh database in a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "db_path: " + filepath.Join(dir, "users.db") + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the root command with the given stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionSkipsConfig(t *testing.T) {
	out, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yml"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jobtrack dev")
}

func TestUsersCommands(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "Abcdef1!\nAbcdef1!\n", "--config", cfgPath, "users", "register", "alice", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "User 'alice' registered successfully")

	_, err = run(t, "Abcdef1!\nAbcdef1!\n", "--config", cfgPath, "users", "register", "alice", "b@x.com")
	assert.EqualError(t, err, "Username already exists")

	_, err = run(t, "Abcdef1!\nAbcdef1!\n", "--config", cfgPath, "users", "register", " ", "blank@x.com")
	assert.EqualError(t, err, "Username is required")

	_, err = run(t, "Abcdef1!\nOther1!x\n", "--config", cfgPath, "users", "register", "bob", "b@x.com")
	assert.EqualError(t, err, "passwords do not match")

	out, err = run(t, "Abcdef1!\n", "--config", cfgPath, "users", "verify", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password is valid")

	_, err = run(t, "wrong\n", "--config", cfgPath, "users", "verify", "a@x.com")
	assert.EqualError(t, err, "Invalid password")

	out, err = run(t, "Abcdef1!\nNewPass1!\nNewPass1!\n", "--config", cfgPath, "users", "change-password", "a@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password changed")

	_, err = run(t, "NewPass1!\n", "--config", cfgPath, "users", "verify", "a@x.com")
	assert.NoError(t, err)

	out, err = run(t, "", "--config", cfgPath, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "a@x.com")
}

func TestResetCommands(t *testing.T) {
	cfgPath := writeConfig(t)

	_, err := run(t, "Abcdef1!\nAbcdef1!\n", "--config", cfgPath, "users", "register", "alice", "a@x.com")
	require.NoError(t, err)

	_, err = run(t, "", "--config", cfgPath, "reset", "initiate", "ghost@x.com")
	assert.EqualError(t, err, "Email not registered")

	out, err := run(t, "", "--config", cfgPath, "reset", "initiate", "a@x.com")
	require.NoError(t, err)

	match := regexp.MustCompile(`Token:\s+([A-Za-z0-9]{32})`).FindStringSubmatch(out)
	require.Len(t, match, 2, "unexpected output: %s", out)
	token := match[1]

	_, err = run(t, "NewPass1!\nNewPass1!\n", "--config", cfgPath, "reset", "complete", "a@x.com", "WRONGTOKENWRONGTOKENWRONGTOKEN12")
	assert.EqualError(t, err, "Invalid or expired token")

	out, err = run(t, "NewPass1!\nNewPass1!\n", "--config", cfgPath, "reset", "complete", "a@x.com", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Password reset successful")

	out, err = run(t, "", "--config", cfgPath, "reset", "purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired token(s)")
}

func TestServerRequiresSecret(t *testing.T) {
	t.Setenv("JOBTRACK_JWT_SECRET_KEY", "")
	_, err := run(t, "", "--config", writeConfig(t), "server")
	assert.EqualError(t, err, "jwt_secret_key is required to run the server")
}
