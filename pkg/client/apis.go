package client

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/config"
)

// InvokeMethod calls method on the channel. A call the daemon answered
// returns its envelope, whatever its status; err is only set when the
// call did not get through.
func (c *Client) InvokeMethod(method string, args any) (*channel.Envelope, error) {
	call := channel.MethodCall{Method: method}
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to marshal arguments of %s", method)
		}
		call.Arguments = b
	}

	payload, err := json.Marshal(call)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal call to %s", method)
	}

	ret, err := c.Post("/channels/"+c.channelName+"/invoke", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to invoke %s", method)
	}

	return channel.DecodeEnvelope([]byte(ret))
}

// call invokes method and decodes its result into T. Error envelopes come
// back as *channel.Error and unknown methods as channel.ErrNotImplemented.
func call[T any](c *Client, method string) (T, error) {
	var v T
	env, err := c.InvokeMethod(method, nil)
	if err != nil {
		return v, err
	}
	err = env.Decode(&v)
	return v, err
}

func (c *Client) GetPlatformVersion() (string, error) {
	return call[string](c, channel.MethodGetPlatformVersion)
}

// GetBatteryLevel returns the battery level in percent. Check for an
// unavailable level with channel.IsUnavailable.
func (c *Client) GetBatteryLevel() (int, error) {
	return call[int](c, channel.MethodGetBatteryLevel)
}

func (c *Client) IsCharging() (bool, error) {
	return call[bool](c, channel.MethodIsCharging)
}

func (c *Client) GetBatteryState() (string, error) {
	return call[string](c, channel.MethodGetBatteryState)
}

// GetTemperature returns the battery temperature in tenths of a degree
// Celsius.
func (c *Client) GetTemperature() (int, error) {
	return call[int](c, channel.MethodGetTemperature)
}

func (c *Client) GetMethods() ([]string, error) {
	ret, err := c.Get("/channels/" + c.channelName + "/methods")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get methods")
	}

	var methods []string
	if err := json.Unmarshal([]byte(ret), &methods); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal methods")
	}
	return methods, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(strings.TrimSpace(ret)), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
