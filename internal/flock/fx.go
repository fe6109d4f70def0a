package flock

import (
	"github.com/poultrylabs/brooder/internal/flock/repository"
	"github.com/poultrylabs/brooder/internal/flock/service"
	"go.uber.org/fx"
)

var Module = fx.Module("flock.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
