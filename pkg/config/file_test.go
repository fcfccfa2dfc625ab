package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewFileMissing(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "battinfo.json"))
	require.NoError(t, err)

	assert.Equal(t, "battinfo", f.ChannelName())
	assert.False(t, f.AllowNonRootAccess())
	assert.Equal(t, "auto", f.Platform())
	assert.Equal(t, "/sys", f.SysfsRoot())
}

func TestNewFileEmpty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "battinfo.json")
	require.NoError(t, os.WriteFile(p, []byte("  \n"), 0644))

	f, err := NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, "battinfo", f.ChannelName())
}

func TestNewFileMalformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "battinfo.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0644))

	_, err := NewFile(p)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "battinfo.json")

	f, err := NewFile(p)
	require.NoError(t, err)
	f.SetChannelName("battery_info_example")
	f.SetAllowNonRootAccess(true)
	f.SetPlatform("android")
	f.SetSysfsRoot("/tmp/sys")
	require.NoError(t, f.Save())

	g, err := NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, "battery_info_example", g.ChannelName())
	assert.True(t, g.AllowNonRootAccess())
	assert.Equal(t, "android", g.Platform())
	assert.Equal(t, "/tmp/sys", g.SysfsRoot())

	raw, err := NewRawFileConfigFromConfig(g)
	require.NoError(t, err)
	assert.Equal(t, "android", *raw.Platform)
}

func TestPartialFileUsesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "battinfo.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"platform":"linux","channelName":""}`), 0644))

	f, err := NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, "linux", f.Platform())
	assert.Equal(t, "battinfo", f.ChannelName())
	assert.Equal(t, "/sys", f.SysfsRoot())
}

func TestLogrusFields(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	fields := f.LogrusFields()
	assert.Equal(t, "battinfo", fields["channelName"])
	assert.Equal(t, "auto", fields["platform"])
}

func TestLoadWhileReading(t *testing.T) {
	p := filepath.Join(t.TempDir(), "battinfo.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"channelName":"battery","platform":"linux"}`), 0644))
	f, err := NewFile(p)
	require.NoError(t, err)

	var eg errgroup.Group
	for i := 0; i < 50; i++ {
		eg.Go(f.Load)
		eg.Go(func() error {
			_ = f.LogrusFields()
			if name := f.ChannelName(); name != "battery" {
				return fmt.Errorf("unexpected channel name %q", name)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, "linux", f.Platform())
}
