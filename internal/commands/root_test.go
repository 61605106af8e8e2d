package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"list-transactions", "add-transaction", "update-transaction", "api", "frontend"} {
		assert.Contains(t, names, want)
	}

	flag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "config.env", flag.DefValue)
}

func TestNewRootCommand_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list-transactions", "--profile", "alice", "-c", "missing.env"})

	assert.ErrorContains(t, root.Execute(), "invalid DB_DRIVER 'mysql'")
}
