package sale

import (
	"github.com/poultrylabs/brooder/internal/sale/repository"
	"github.com/poultrylabs/brooder/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
