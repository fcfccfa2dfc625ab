package main

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/battinfo/pkg/channel"
	"github.com/charlie0129/battinfo/pkg/client"
	"github.com/charlie0129/battinfo/pkg/config"
	"github.com/charlie0129/battinfo/pkg/platform"
)

func newClient() *client.Client {
	return client.NewClient(unixSocketPath, channelName)
}

// newLocalHandler builds the handler the daemon would use, from the same
// config file.
func newLocalHandler() (*channel.Handler, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	p, err := platform.New(platform.Options{
		Name:      conf.Platform(),
		SysfsRoot: conf.SysfsRoot(),
	})
	if err != nil {
		return nil, err
	}
	return channel.NewHandler(p), nil
}

// invoke calls method either on the daemon or, with --local, in-process.
// Both paths yield the envelope the daemon would send.
func invoke(method string, args json.RawMessage) (*channel.Envelope, error) {
	if !local {
		var a any
		if len(args) > 0 {
			a = args
		}
		return newClient().InvokeMethod(method, a)
	}

	h, err := newLocalHandler()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(h.Handle(method, args))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to marshal response of %s", method)
	}
	return channel.DecodeEnvelope(b)
}

// query invokes method and decodes its result into T.
func query[T any](method string) (T, error) {
	var v T
	env, err := invoke(method, nil)
	if err != nil {
		return v, err
	}
	return v, env.Decode(&v)
}
