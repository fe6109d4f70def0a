package feed

import (
	"github.com/poultrylabs/brooder/internal/feed/repository"
	"github.com/poultrylabs/brooder/internal/feed/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feed.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
