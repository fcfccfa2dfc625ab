package service

import "os/exec"

const launchdPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>cc.chlc.battinfo</string>
	<key>ProgramArguments</key>
	<array>
		<string>/path/to/battinfo</string>
		<string>daemon</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>/tmp/battinfo.log</string>
	<key>StandardErrorPath</key>
	<string>/tmp/battinfo.log</string>
</dict>
</plist>
`

// Launchd returns the Manager for a system-wide launchd daemon.
func Launchd() *Manager {
	return &Manager{
		Path:     "/Library/LaunchDaemons/cc.chlc.battinfo.plist",
		Template: launchdPlistTemplate,
		Load: func(path string) *exec.Cmd {
			return exec.Command("/bin/launchctl", "load", path)
		},
		Unload: func(path string) *exec.Cmd {
			return exec.Command("/bin/launchctl", "unload", path)
		},
	}
}
