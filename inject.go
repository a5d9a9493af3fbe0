package main

import (
	"github.com/tvuforum/syncGo/auth"
	"github.com/tvuforum/syncGo/channel"
	"github.com/tvuforum/syncGo/interactions"
	"github.com/tvuforum/syncGo/restapi"
)

type Inject struct {
	Api     *restapi.Client
	Channel *channel.SocketClient

	Synchronizer *interactions.Synchronizer
}

func NewInject(config *Config) (*Inject, error) {
	inj := &Inject{}

	inj.Api = restapi.NewClient(config.ServerUrl, config.Token)
	inj.Channel = channel.NewSocketClient(config.SocketUrl, config.Token)

	var viewer *interactions.Viewer
	if len(config.Token) > 0 {
		parsed, err := auth.ParseViewer(config.Token)
		if err != nil {
			return nil, err
		}
		viewer = parsed
	}

	inj.Synchronizer = interactions.NewSynchronizer(inj.Api, inj.Channel, viewer)
	return inj, nil
}
