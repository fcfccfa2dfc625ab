package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/config"
	"github.com/charlie0129/battinfo/pkg/platform"
	"github.com/charlie0129/battinfo/pkg/platform/platformtest"
	"github.com/charlie0129/battinfo/pkg/version"
)

func newTestServer(fake *platformtest.Fake) *Server {
	return NewServer(config.NewFileFromConfig(nil, ""), channel.NewHandler(fake))
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestInvoke(t *testing.T) {
	s := newTestServer(&platformtest.Fake{Version: "Linux 6.8.0", Level: 91})

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "platform version",
			body: `{"method":"getPlatformVersion"}`,
			want: `{"status":"success","result":"Linux 6.8.0"}`,
		},
		{
			name: "battery level",
			body: `{"method":"getBatteryLevel","arguments":null}`,
			want: `{"status":"success","result":91}`,
		},
		{
			name: "unknown method",
			body: `{"method":"selfDestruct"}`,
			want: `{"status":"notImplemented"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/channels/battinfo/invoke", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestInvokeUnavailable(t *testing.T) {
	s := newTestServer(&platformtest.Fake{LevelErr: platform.ErrUnavailable})

	w := do(t, s, http.MethodPost, "/channels/battinfo/invoke", `{"method":"getBatteryLevel"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"error","code":"UNAVAILABLE","message":"Battery level not available."}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/battery-level", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `"Battery level not available."`, w.Body.String())
}

func TestInvokeBadRequests(t *testing.T) {
	s := newTestServer(&platformtest.Fake{})

	w := do(t, s, http.MethodPost, "/channels/other/invoke", `{"method":"getBatteryLevel"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/channels/battinfo/invoke", `{"arguments":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/channels/battinfo/invoke", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfiguredChannelName(t *testing.T) {
	conf := config.NewFileFromConfig(nil, "")
	conf.SetChannelName("battery_info_example")
	s := NewServer(conf, channel.NewHandler(&platformtest.Fake{Level: 12}))

	w := do(t, s, http.MethodPost, "/channels/battery_info_example/invoke", `{"method":"getBatteryLevel"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","result":12}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/channels/battinfo/invoke", `{"method":"getBatteryLevel"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConvenienceRoutes(t *testing.T) {
	s := newTestServer(&platformtest.Fake{Version: "iOS 17.0", Level: 100})

	w := do(t, s, http.MethodGet, "/platform-version", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"iOS 17.0"`, w.Body.String())

	w = do(t, s, http.MethodGet, "/battery-level", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100", w.Body.String())

	w = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"`+version.Version+`"`, w.Body.String())

	w = do(t, s, http.MethodGet, "/channels/battinfo/methods", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var methods []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	assert.Contains(t, methods, channel.MethodGetBatteryLevel)

	w = do(t, s, http.MethodGet, "/config", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var raw config.RawFileConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "battinfo", *raw.ChannelName)
}

func TestReload(t *testing.T) {
	conf := config.NewFileFromConfig(nil, t.TempDir()+"/battinfo.json")
	conf.SetPlatform("generic")
	require.NoError(t, conf.Save())

	s, err := NewServerFromConfig(conf)
	require.NoError(t, err)
	assert.Equal(t, "generic", s.handler.Load().Platform().Name())

	conf.SetPlatform("linux")
	require.NoError(t, conf.Save())
	require.NoError(t, s.Reload())
	assert.Equal(t, "linux", s.handler.Load().Platform().Name())
}

func TestReloadWhileServing(t *testing.T) {
	conf := config.NewFileFromConfig(nil, t.TempDir()+"/battinfo.json")
	conf.SetPlatform("generic")
	require.NoError(t, conf.Save())

	s, err := NewServerFromConfig(conf)
	require.NoError(t, err)
	router := s.Router()

	var eg errgroup.Group
	for i := 0; i < 50; i++ {
		eg.Go(s.Reload)
		eg.Go(func() error {
			req := httptest.NewRequest(http.MethodPost, "/channels/battinfo/invoke", strings.NewReader(`{"method":"getPlatformVersion"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, "generic", s.handler.Load().Platform().Name())
}

func TestListenRemovesStaleSocket(t *testing.T) {
	p := t.TempDir() + "/battinfo.sock"

	l, err := listen(p)
	require.NoError(t, err)

	_, err = listen(p)
	assert.Error(t, err, "socket in use must not be replaced")
	require.NoError(t, l.Close())

	// net.UnixListener unlinks the socket on Close, so leave a plain
	// file behind to stand in for a stale one.
	require.NoError(t, os.WriteFile(p, nil, 0600))
	l, err = listen(p)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}
