//go:build wireinject

package app

import (
	"brqwen/internal/config"
	"brqwen/internal/qwen"

	"github.com/google/wire"
)

func buildAppWithWire(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		provideLogSinks,
		provideClient,
		wire.Bind(new(qwen.Gateway), new(*qwen.Client)),
		provideApp,
	)
	return nil, nil, nil
}
