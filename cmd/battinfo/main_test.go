package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/client"
)

func TestBindEnv(t *testing.T) {
	t.Setenv("BATTINFO_DAEMON_SOCKET", "/tmp/from-env.sock")
	t.Setenv("BATTINFO_LOCAL", "true")
	t.Setenv("BATTINFO_CHANNEL", "from-env")

	var socket, name string
	var isLocal bool
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&socket, "daemon-socket", "/var/run/battinfo.sock", "")
	flags.StringVar(&name, "channel", "battinfo", "")
	flags.BoolVar(&isLocal, "local", false, "")
	require.NoError(t, flags.Parse([]string{"--channel", "from-flag"}))

	require.NoError(t, bindEnv(flags))
	assert.Equal(t, "/tmp/from-env.sock", socket)
	assert.True(t, isLocal)
	assert.Equal(t, "from-flag", name, "command line wins over environment")
}

func TestBindEnvInvalid(t *testing.T) {
	t.Setenv("BATTINFO_LOCAL", "sometimes")

	var isLocal bool
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolVar(&isLocal, "local", false, "")
	require.NoError(t, flags.Parse(nil))

	assert.Error(t, bindEnv(flags))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "31.2 °C", formatTemperature(312))
	assert.Equal(t, "-4.5 °C", formatTemperature(-45))
}

func TestOptional(t *testing.T) {
	v, err := optional(42, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, *v)

	v, err = optional(0, &channel.Error{Code: channel.CodeUnavailable})
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = optional(0, client.ErrDaemonNotRunning)
	assert.ErrorIs(t, err, client.ErrDaemonNotRunning)
}

func TestCommandTree(t *testing.T) {
	cmd := NewCommand()
	for _, name := range []string{"daemon", "level", "platform-version", "charging", "state", "temperature", "call", "status", "install", "uninstall", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
