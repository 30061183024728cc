// Package main provides the workbench CLI: security universe research, tick
// scoring, notes, exclusions management and backtest job control.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/config"
	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/logger"
	"github.com/ethicic/workbench/internal/notify"
	"github.com/ethicic/workbench/internal/portql"
	"github.com/ethicic/workbench/internal/query"
	"github.com/ethicic/workbench/internal/workbench"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string

	cfg      *config.Config
	appLog   *logrus.Logger
	audit    *logger.AuditLogger
	bus      *notify.Bus
	qcache   *query.Cache
	wbClient *workbench.Client
	pqClient *portql.Client
)

var rootCmd = &cobra.Command{
	Use:   "workbench",
	Short: "Investment research and exclusions management workbench",
	Long: `CLI for the investment research workbench: browse the security
universe, manage tick scores and notes, maintain the exclusions list and
inspect backtest jobs on the PortQL API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if bus != nil {
			bus.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")
	rootCmd.AddCommand(
		universeCmd,
		securityCmd,
		tickCmd,
		notesCmd,
		exclusionsCmd,
		portfolioCmd,
		dashboardCmd,
		backtestCmd,
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Pull write credentials from AWS when enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies() error {
	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	audit = logger.NewAuditLogger(appLog)
	bus = notify.NewBus()
	qcache = query.NewCache(cfg.Cache.TTL(), cfg.Cache.MaxEntries, appLog)

	apiHTTP, err := httpx.New(cfg.API.HTTPConfig(), appLog)
	if err != nil {
		return err
	}
	wbClient = workbench.NewClient(apiHTTP, qcache, appLog)

	pqHTTP, err := httpx.New(cfg.PortQL.HTTPConfig(), appLog)
	if err != nil {
		return err
	}
	pqClient = portql.NewClient(pqHTTP, appLog)

	return nil
}

// printNotifications drains bus notifications to stderr so command output
// stays pipeable.
func printNotifications(ch <-chan notify.Notification) {
	for n := range ch {
		switch n.Level {
		case notify.LevelError:
			fmt.Fprintf(os.Stderr, "error: %s\n", n.Message)
		default:
			fmt.Fprintf(os.Stderr, "%s\n", n.Message)
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("workbench %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	},
}
