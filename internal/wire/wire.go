//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/print-relay/internal/app"
)

func InitializeApp(ctx context.Context, configPath string) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

func InitializePipeline(configPath string) (*Pipeline, func(), error) {
	wire.Build(PipelineSet, NewPipeline)
	return &Pipeline{}, nil, nil
}
