//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/janhq/mirror-server/internal/domain"
	"github.com/janhq/mirror-server/internal/infrastructure"
	"github.com/janhq/mirror-server/internal/interfaces"
)

func CreateApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
