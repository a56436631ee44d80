package main

import (
	"fmt"
	"os"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driven/aws"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driven/chart"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driven/config"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driven/data"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driven/export"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driving/cli"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/application/usecase"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/console"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/version"
)

func main() {
	// Repositórios sem dependência da configuração
	chartRepo := chart.NewChartRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	publisher := aws.NewPublisherRepository()
	consoleImpl := console.NewConsole()

	// O gerador de dados depende do arquivo de configuração, lido pela CLI
	newUseCase := func(cfg types.Config) (*usecase.DashboardUseCase, error) {
		startDate, err := data.ParseStartDate(cfg.StartDate)
		if err != nil {
			return nil, err
		}

		dataRepo := data.NewDataRepository(data.Settings{
			Seed:      cfg.Seed,
			StartDate: startDate,
			Days:      cfg.Days,
			Products:  cfg.Products,
		})

		return usecase.NewDashboardUseCase(
			dataRepo,
			chartRepo,
			exportRepo,
			publisher,
			consoleImpl,
		), nil
	}

	app := cli.NewCLIApp(version.Version, configRepo, newUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
