package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/config"
	"github.com/charlie0129/battinfo/pkg/platform"
)

// Server serves a battery method channel over HTTP.
type Server struct {
	conf    config.Config
	handler atomic.Pointer[channel.Handler]
}

// NewServer returns a Server answering with h.
func NewServer(conf config.Config, h *channel.Handler) *Server {
	s := &Server{conf: conf}
	s.handler.Store(h)
	return s
}

// NewServerFromConfig builds the platform selected by conf.
func NewServerFromConfig(conf config.Config) (*Server, error) {
	h, err := newHandler(conf)
	if err != nil {
		return nil, err
	}
	return NewServer(conf, h), nil
}

func newHandler(conf config.Config) (*channel.Handler, error) {
	p, err := platform.New(platform.Options{
		Name:      conf.Platform(),
		SysfsRoot: conf.SysfsRoot(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to set up platform")
	}
	logrus.WithFields(logrus.Fields{
		"platform": p.Name(),
		"version":  p.PlatformVersion(),
	}).Info("platform selected")
	return channel.NewHandler(p), nil
}

// Reload re-reads the config and rebuilds the platform from it.
// In-flight calls finish on the previous platform.
func (s *Server) Reload() error {
	if err := s.conf.Load(); err != nil {
		return pkgerrors.Wrap(err, "failed to reload config")
	}
	h, err := newHandler(s.conf)
	if err != nil {
		return err
	}
	prev := s.handler.Swap(h)
	if prev != nil && prev.Platform().Name() != h.Platform().Name() {
		logrus.WithFields(logrus.Fields{
			"from": prev.Platform().Name(),
			"to":   h.Platform().Name(),
		}).Info("platform switched")
	}
	return nil
}

// Router returns the HTTP routes of the server.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.POST("/channels/:name/invoke", s.invoke)
	router.GET("/channels/:name/methods", s.getMethods)
	router.GET("/platform-version", s.getPlatformVersion)
	router.GET("/battery-level", s.getBatteryLevel)
	router.GET("/config", s.getConfig)
	router.GET("/version", getVersion)

	return router
}

// Run starts the daemon on unixSocketPath and blocks until SIGINT or
// SIGTERM.
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	s, err := NewServerFromConfig(conf)
	if err != nil {
		return err
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := s.Reload(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	l, err := listen(unixSocketPath)
	if err != nil {
		return err
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			_ = l.Close()
			return pkgerrors.Wrapf(err, "failed to chmod %s", unixSocketPath)
		}
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}

// listen creates the unix socket, removing a stale one left behind by a
// daemon that did not shut down cleanly.
func listen(unixSocketPath string) (net.Listener, error) {
	if _, err := os.Stat(unixSocketPath); err == nil {
		conn, err := net.Dial("unix", unixSocketPath)
		if err == nil {
			_ = conn.Close()
			return nil, pkgerrors.Errorf("another daemon is already listening on %s", unixSocketPath)
		}
		logrus.Warnf("removing stale socket %s", unixSocketPath)
		if err := os.Remove(unixSocketPath); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
		}
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}
	return l, nil
}
