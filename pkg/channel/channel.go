// Package channel implements the battery method channel: a fixed table of
// method names, each answered by the platform with a success value, an
// UNAVAILABLE error, or not-implemented.
package channel

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battinfo/pkg/platform"
)

// DefaultName is the channel name used when none is configured.
const DefaultName = "battinfo"

// Method names.
const (
	MethodGetPlatformVersion = "getPlatformVersion"
	MethodGetBatteryLevel    = "getBatteryLevel"
	MethodIsCharging         = "isCharging"
	MethodGetBatteryState    = "getBatteryState"
	MethodGetTemperature     = "getTemperature"
)

// CodeUnavailable is the error code for metrics that cannot be read.
const CodeUnavailable = "UNAVAILABLE"

const (
	msgBatteryLevelUnavailable = "Battery level not available."
	msgTemperatureUnavailable  = "Battery temperature not available."
)

// unavailableMessage is the UNAVAILABLE message of method.
func unavailableMessage(method string) string {
	switch method {
	case MethodGetBatteryLevel:
		return msgBatteryLevelUnavailable
	case MethodGetTemperature:
		return msgTemperatureUnavailable
	default:
		return fmt.Sprintf("%s not available.", method)
	}
}

// MethodCall is a request on the channel. Arguments are accepted for
// compatibility but no method uses them.
type MethodCall struct {
	Method    string          `json:"method" binding:"required"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// MethodFunc answers one method.
type MethodFunc func(args json.RawMessage) Response

// Handler dispatches method calls to a platform. The dispatch table is
// fixed at construction, so a Handler is safe for concurrent use.
type Handler struct {
	platform platform.Platform
	methods  map[string]MethodFunc
}

// NewHandler returns a Handler answering from p.
func NewHandler(p platform.Platform) *Handler {
	h := &Handler{platform: p}
	h.methods = map[string]MethodFunc{
		MethodGetPlatformVersion: h.getPlatformVersion,
		MethodGetBatteryLevel:    h.getBatteryLevel,
		MethodIsCharging:         h.isCharging,
		MethodGetBatteryState:    h.getBatteryState,
		MethodGetTemperature:     h.getTemperature,
	}
	return h
}

// Platform returns the platform the handler answers from.
func (h *Handler) Platform() platform.Platform {
	return h.platform
}

// Methods returns the known method names, sorted.
func (h *Handler) Methods() []string {
	names := make([]string, 0, len(h.methods))
	for name := range h.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle answers a single call. It never panics: a panicking accessor is
// reported as UNAVAILABLE.
func (h *Handler) Handle(method string, args json.RawMessage) (resp Response) {
	fn, ok := h.methods[method]
	if !ok {
		logrus.WithField("method", method).Debug("method not implemented")
		return NotImplemented()
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"method": method,
				"panic":  r,
			}).Error("platform accessor panicked")
			resp = Failure(CodeUnavailable, unavailableMessage(method), nil)
		}
	}()

	resp = fn(args)
	logrus.WithFields(logrus.Fields{
		"method": method,
		"status": resp.Status,
	}).Trace("method handled")
	return resp
}

// HandleCall is Handle for a decoded MethodCall.
func (h *Handler) HandleCall(call MethodCall) Response {
	return h.Handle(call.Method, call.Arguments)
}

func (h *Handler) getPlatformVersion(_ json.RawMessage) Response {
	return Success(h.platform.PlatformVersion())
}

func (h *Handler) getBatteryLevel(_ json.RawMessage) Response {
	level, err := h.platform.BatteryLevel()
	if err != nil {
		logrus.Debugf("battery level unavailable: %v", err)
		return Failure(CodeUnavailable, unavailableMessage(MethodGetBatteryLevel), nil)
	}
	// An out of range level is never a success.
	if level < 0 || level > 100 {
		logrus.Warnf("platform %s returned out of range battery level %d", h.platform.Name(), level)
		return Failure(CodeUnavailable, unavailableMessage(MethodGetBatteryLevel), nil)
	}
	return Success(level)
}

func (h *Handler) isCharging(_ json.RawMessage) Response {
	return Success(h.platform.IsCharging())
}

func (h *Handler) getBatteryState(_ json.RawMessage) Response {
	return Success(h.platform.ChargeState().String())
}

func (h *Handler) getTemperature(_ json.RawMessage) Response {
	temp, err := h.platform.Temperature()
	if err != nil {
		logrus.Debugf("battery temperature unavailable: %v", err)
		return Failure(CodeUnavailable, unavailableMessage(MethodGetTemperature), nil)
	}
	return Success(temp)
}
