// Command counselor talks to the career advisor from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/skillsetter/backend/internal/config"
	"github.com/zhouzirui/skillsetter/backend/internal/logging"
	"github.com/zhouzirui/skillsetter/backend/internal/model/catalog"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice/provider"
)

var (
	// profileFile is a YAML learner profile; the catalog default is used when empty.
	profileFile string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "counselor",
	Short: "Chat with the career advisor or generate a learning path",
	Long: `counselor runs the advisor without the HTTP server.

Available subcommands:
  chat - interactive advice session
  path - generate a 4-6 step learning path for the profile`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFile, "profile", "p", "", "YAML learner profile (defaults to the built-in sample learner)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(pathCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles what both subcommands need.
type app struct {
	seed   *catalog.Catalog
	client *advice.Client
	log    logrus.FieldLogger
}

func newApp(ctx context.Context) (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := logging.NewWithOutput(os.Stderr, level, cfg.Log.Format)
	if envErr != nil {
		log.WithError(envErr).Debug("no .env file loaded, using system environment variables only")
	}

	return &app{
		seed:   catalog.Default(),
		client: provider.NewClient(ctx, cfg.AI, log),
		log:    log,
	}, nil
}
