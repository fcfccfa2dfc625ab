package service

import "os/exec"

const systemdUnitTemplate = `[Unit]
Description=battinfo battery query daemon
After=local-fs.target

[Service]
Type=simple
ExecStart=/path/to/battinfo daemon
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// Systemd returns the Manager for a systemd system unit.
func Systemd() *Manager {
	return &Manager{
		Path:     "/etc/systemd/system/battinfo.service",
		Template: systemdUnitTemplate,
		Load: func(_ string) *exec.Cmd {
			return exec.Command("systemctl", "enable", "--now", "battinfo.service")
		},
		Unload: func(_ string) *exec.Cmd {
			return exec.Command("systemctl", "disable", "--now", "battinfo.service")
		},
	}
}
