package channel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/charlie0129/battinfo/pkg/platform"
	"github.com/charlie0129/battinfo/pkg/platform/platformtest"
)

func TestGetPlatformVersion(t *testing.T) {
	h := NewHandler(&platformtest.Fake{Version: "Android 14"})

	resp := h.Handle(MethodGetPlatformVersion, nil)
	require.NoError(t, resp.Err())
	assert.Equal(t, "Android 14", resp.Result)
}

func TestGetBatteryLevel(t *testing.T) {
	tests := []struct {
		name        string
		fake        *platformtest.Fake
		want        int
		unavailable bool
	}{
		{name: "in range", fake: &platformtest.Fake{Level: 42}, want: 42},
		{name: "empty", fake: &platformtest.Fake{Level: 0}, want: 0},
		{name: "full", fake: &platformtest.Fake{Level: 100}, want: 100},
		{name: "platform error", fake: &platformtest.Fake{LevelErr: platform.ErrUnavailable}, unavailable: true},
		{name: "sentinel leaked", fake: &platformtest.Fake{Level: -1}, unavailable: true},
		{name: "over range", fake: &platformtest.Fake{Level: 101}, unavailable: true},
		{name: "panic", fake: &platformtest.Fake{Panic: "sensor gone"}, unavailable: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewHandler(tt.fake).Handle(MethodGetBatteryLevel, nil)
			if tt.unavailable {
				assert.Equal(t, StatusError, resp.Status)
				assert.Equal(t, CodeUnavailable, resp.Code)
				assert.Equal(t, "Battery level not available.", resp.Message)
				assert.Nil(t, resp.Details)
				assert.True(t, IsUnavailable(resp.Err()))
				return
			}
			require.NoError(t, resp.Err())
			assert.Equal(t, tt.want, resp.Result)
		})
	}
}

func TestSupplementaryMethods(t *testing.T) {
	h := NewHandler(&platformtest.Fake{
		Charging: true,
		State:    platform.StateCharging,
		Temp:     305,
	})

	assert.Equal(t, Success(true), h.Handle(MethodIsCharging, nil))
	assert.Equal(t, Success("charging"), h.Handle(MethodGetBatteryState, nil))
	assert.Equal(t, Success(305), h.Handle(MethodGetTemperature, nil))

	h = NewHandler(&platformtest.Fake{TempErr: platform.ErrUnavailable})
	resp := h.Handle(MethodGetTemperature, nil)
	assert.Equal(t, Failure(CodeUnavailable, "Battery temperature not available.", nil), resp)
	assert.Equal(t, Success(false), h.Handle(MethodIsCharging, nil))
	assert.Equal(t, Success("unknown"), h.Handle(MethodGetBatteryState, nil))
}

func TestNotImplemented(t *testing.T) {
	h := NewHandler(&platformtest.Fake{Level: 50})

	for _, method := range []string{"", "getbatterylevel", "setBatteryLevel", "getPlatformVersion "} {
		resp := h.Handle(method, json.RawMessage(`{"x":1}`))
		assert.Equal(t, StatusNotImplemented, resp.Status, "method %q", method)
		assert.ErrorIs(t, resp.Err(), ErrNotImplemented)
		assert.False(t, IsUnavailable(resp.Err()))
	}
}

func TestArgumentsIgnored(t *testing.T) {
	h := NewHandler(&platformtest.Fake{Level: 64})
	resp := h.HandleCall(MethodCall{Method: MethodGetBatteryLevel, Arguments: json.RawMessage(`[1,2,3]`)})
	assert.Equal(t, Success(64), resp)
}

func TestIdempotentClassification(t *testing.T) {
	for _, fake := range []*platformtest.Fake{
		{Level: 77},
		{LevelErr: errors.New("no battery")},
	} {
		h := NewHandler(fake)
		first := h.Handle(MethodGetBatteryLevel, nil)
		second := h.Handle(MethodGetBatteryLevel, nil)
		assert.Equal(t, first, second)
		assert.EqualValues(t, 2, fake.LevelReads(), "every call reads the platform")
	}
}

func TestConcurrentCalls(t *testing.T) {
	fake := &platformtest.Fake{Level: 33, Version: "Linux 6.8.0"}
	h := NewHandler(fake)

	responses := make([]Response, 100)
	var g errgroup.Group
	for i := range responses {
		i := i
		g.Go(func() error {
			method := MethodGetBatteryLevel
			if i%2 == 1 {
				method = MethodGetPlatformVersion
			}
			responses[i] = h.Handle(method, nil)
			return responses[i].Err()
		})
	}
	require.NoError(t, g.Wait())

	for i, resp := range responses {
		if i%2 == 1 {
			assert.Equal(t, Success("Linux 6.8.0"), resp)
		} else {
			assert.Equal(t, Success(33), resp)
		}
	}
	assert.EqualValues(t, 50, fake.LevelReads())
}

func TestMethods(t *testing.T) {
	h := NewHandler(&platformtest.Fake{})
	assert.Equal(t, []string{
		MethodGetBatteryLevel,
		MethodGetBatteryState,
		MethodGetPlatformVersion,
		MethodGetTemperature,
		MethodIsCharging,
	}, h.Methods())
}
