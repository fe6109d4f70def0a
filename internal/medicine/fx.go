package medicine

import (
	"github.com/poultrylabs/brooder/internal/medicine/domain"
	"github.com/poultrylabs/brooder/internal/medicine/service"
	"github.com/poultrylabs/brooder/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("medicine.service",
	fx.Provide(repository.ProvideStore[domain.MedicineEntry]),
	fx.Provide(service.NewService),
)
