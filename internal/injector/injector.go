//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/physics2d/internal/audio"
	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/server"
)

func InitializeApp(path ConfigPath) (*App, error) {
	wire.Build(CoreSet)
	return nil, nil
}

func InitializeAppWith(cfg *config.Config) (*App, error) {
	wire.Build(SceneSet)
	return nil, nil
}

func InitializeServer(path ConfigPath) (*server.Server, error) {
	wire.Build(ServerSet)
	return nil, nil
}

func InitializeAudio(path ConfigPath) (*audio.Player, error) {
	wire.Build(AudioSet)
	return nil, nil
}
