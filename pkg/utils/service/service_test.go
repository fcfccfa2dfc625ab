package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	for _, m := range []*Manager{Launchd(), Systemd()} {
		out := m.Render("/usr/local/bin/battinfo")
		assert.NotContains(t, out, exePlaceholder)
		assert.Contains(t, out, "/usr/local/bin/battinfo")
	}
}

func TestCommands(t *testing.T) {
	m := Launchd()
	assert.Equal(t, []string{"/bin/launchctl", "load", m.Path}, m.Load(m.Path).Args)
	assert.Equal(t, []string{"/bin/launchctl", "unload", m.Path}, m.Unload(m.Path).Args)

	m = Systemd()
	assert.Equal(t, []string{"systemctl", "enable", "--now", "battinfo.service"}, m.Load(m.Path).Args)
}
