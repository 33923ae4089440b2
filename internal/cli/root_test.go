package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"serve", "worker", "migrate"}, names)

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestWorkerFlags(t *testing.T) {
	cmd := NewRootCommand()

	workerCmd, _, err := cmd.Find([]string{"worker"})
	require.NoError(t, err)

	require.NoError(t, workerCmd.ParseFlags([]string{"--metrics-addr", ":9999"}))
	assert.Equal(t, ":9999", workerCmd.Flags().Lookup("metrics-addr").Value.String())
}

func TestSubcommandsRejectArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate", "extra"})

	err := cmd.Execute()

	require.Error(t, err)
}
