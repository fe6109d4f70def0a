package monitoring

import (
	"github.com/poultrylabs/brooder/internal/monitoring/repository"
	"github.com/poultrylabs/brooder/internal/monitoring/service"
	"go.uber.org/fx"
)

var Module = fx.Module("monitoring.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
