package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/adapter/driving/web"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/application/usecase"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/domain/repository"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/internal/shared/types"
	"github.com/sfc-gh-dkincaid/streamlit-printable-export-to-pdf/pkg/version"
)

const defaultAddr = ":8080"

// UseCaseFactory monta o caso de uso a partir da configuração carregada.
type UseCaseFactory func(cfg types.Config) (*usecase.DashboardUseCase, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	newUseCase UseCaseFactory
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, newUseCase UseCaseFactory) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		newUseCase: newUseCase,
		version:    versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "dashboard-report",
		Short:         "Business dashboard with printable PDF export",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "Dashboard Report version: %s\n" .Version}}`)
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Generate the dashboard PDF report and optional dataset exports",
		RunE:  app.runExport,
	}
	exportCmd.Flags().String("from", "", "First day of the date range (YYYY-MM-DD)")
	exportCmd.Flags().String("to", "", "Last day of the date range (YYYY-MM-DD)")
	exportCmd.Flags().StringSliceP("products", "p", nil, "Products to include (comma-separated, default: all)")
	exportCmd.Flags().StringP("notes", "n", "", "Additional notes appended to the report")
	exportCmd.Flags().String("notes-file", "", "Read the additional notes from a file")
	exportCmd.Flags().StringSliceP("report-type", "y", []string{"pdf"}, "Output types: pdf, csv, json, xlsx")
	exportCmd.Flags().StringP("dir", "d", "", "Directory to save the files (default: current directory)")
	exportCmd.Flags().String("s3-bucket", "", "Also upload the PDF report to this S3 bucket")
	exportCmd.Flags().String("s3-prefix", "", "Key prefix for uploaded reports")
	exportCmd.Flags().String("aws-profile", "", "AWS profile used for the upload")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API",
		RunE:  app.runServe,
	}
	serveCmd.Flags().String("addr", defaultAddr, "Address the HTTP API listens on")

	rootCmd.AddCommand(exportCmd, serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// loadConfig lê o arquivo de configuração, se informado.
func (app *CLIApp) loadConfig(cmd *cobra.Command) (types.Config, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile == "" {
		return types.Config{}, nil
	}

	cfg, err := app.configRepo.LoadConfigFile(configFile)
	if err != nil {
		return types.Config{}, err
	}
	return *cfg, nil
}

// parseExportArgs lê as flags do comando export. Valores do arquivo de
// configuração só valem para flags que não foram passadas.
func parseExportArgs(flags *pflag.FlagSet, cfg types.Config) (*types.CLIArgs, error) {
	args := &types.CLIArgs{}
	args.ConfigFile, _ = flags.GetString("config-file")
	args.From, _ = flags.GetString("from")
	args.To, _ = flags.GetString("to")
	args.Products, _ = flags.GetStringSlice("products")
	args.Notes, _ = flags.GetString("notes")
	args.NotesFile, _ = flags.GetString("notes-file")
	args.ReportType, _ = flags.GetStringSlice("report-type")
	args.Dir, _ = flags.GetString("dir")
	args.S3Bucket, _ = flags.GetString("s3-bucket")
	args.S3Prefix, _ = flags.GetString("s3-prefix")
	args.AWSProfile, _ = flags.GetString("aws-profile")

	if !flags.Changed("products") {
		args.Products = nil
	}
	if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	mergeString(flags, "dir", &args.Dir, cfg.Dir)
	mergeString(flags, "s3-bucket", &args.S3Bucket, cfg.S3Bucket)
	mergeString(flags, "s3-prefix", &args.S3Prefix, cfg.S3Prefix)
	mergeString(flags, "aws-profile", &args.AWSProfile, cfg.AWSProfile)

	if args.NotesFile != "" {
		notes, err := os.ReadFile(args.NotesFile)
		if err != nil {
			return nil, fmt.Errorf("error reading notes file: %w", err)
		}
		args.Notes = string(notes)
	}

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

func mergeString(flags *pflag.FlagSet, name string, target *string, fromConfig string) {
	if !flags.Changed(name) && fromConfig != "" {
		*target = fromConfig
	}
}

func (app *CLIApp) runExport(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	cliArgs, err := parseExportArgs(cmd.Flags(), cfg)
	if err != nil {
		return err
	}

	uc, err := app.newUseCase(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return uc.RunExport(ctx, cliArgs)
}

func (app *CLIApp) runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	mergeString(cmd.Flags(), "addr", &addr, cfg.Addr)

	uc, err := app.newUseCase(cfg)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	api := web.NewWebAPI(logger, web.Config{
		Addr:      addr,
		Dashboard: uc,
	})

	return api.Start(context.Background())
}
