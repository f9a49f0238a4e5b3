package main

import (
	"fmt"
	"os"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/config"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/export"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/records"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driving/cli"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/application/usecase"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/pkg/console"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	recordRepo := records.NewRecordRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	reportUseCase := usecase.NewReportUseCase(
		recordRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
