package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/config"
	"github.com/poultrylabs/brooder/internal/feed"
	"github.com/poultrylabs/brooder/internal/flock"
	"github.com/poultrylabs/brooder/internal/logger"
	"github.com/poultrylabs/brooder/internal/medicine"
	"github.com/poultrylabs/brooder/internal/migration"
	"github.com/poultrylabs/brooder/internal/monitoring"
	"github.com/poultrylabs/brooder/internal/observability/metrics"
	"github.com/poultrylabs/brooder/internal/report"
	"github.com/poultrylabs/brooder/internal/sale"
	"github.com/poultrylabs/brooder/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		batchlock.Module,
		migration.Module,

		// Functional domains
		flock.Module,
		feed.Module,
		monitoring.Module,
		sale.Module,
		medicine.Module,
		report.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
