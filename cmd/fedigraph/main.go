package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fediscience/fedigraph/internal/util"
	"github.com/fediscience/fedigraph/pkg/fedigraph"
	"github.com/fediscience/fedigraph/pkg/logger"
	"github.com/fediscience/fedigraph/pkg/logger/console"
)

var (
	flagManifestURL string
	flagDebug       bool
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "fedigraph",
		Short:         "explore the fediverse graph dataset",
		Long:          "fedigraph lists and downloads the graphs of the public fediverse graph dataset.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug: flagDebug || util.GetEnvBool("DEBUG", false),
			}))
		},
	}
	root.PersistentFlags().StringVar(&flagManifestURL, "manifest-url",
		util.GetEnvString("FEDIGRAPH_MANIFEST_URL", ""),
		"croissant manifest URL (defaults to the public Kaggle dataset)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(
		NewSoftwareCmd(),
		NewGraphsCmd(),
		NewDatesCmd(),
		NewStatsCmd(),
		NewMetadataCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// newLoader builds the dataset-backed loader shared by all subcommands.
func newLoader(ctx context.Context) (*fedigraph.GraphLoader, error) {
	return fedigraph.NewGraphLoader(ctx, fedigraph.NewGraphLoaderParams{
		ManifestURL: flagManifestURL,
	})
}
