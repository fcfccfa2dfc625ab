package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when nothing listens on the socket.
	ErrDaemonNotRunning = errors.New("battinfo daemon not running")

	// ErrPermissionDenied is returned when the socket is not accessible to
	// the caller, i.e. the daemon runs without non-root access.
	ErrPermissionDenied = errors.New("permission denied on daemon socket")

	// ErrNotFound is returned when the daemon answers 404: the channel name
	// differs from the daemon's channelName, or the route is unknown to an
	// older daemon.
	ErrNotFound = errors.New("channel or route not found")
)
