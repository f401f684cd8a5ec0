package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/logging"
)

const serviceName = "homework-bot"

type options struct {
	envFile string
	human   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "homework-bot",
		Short: "Notify a chat when homework review statuses change",
		Long: `homework-bot polls the homework review API and sends a message to
Telegram or Slack whenever a submission's review status changes.

Configuration comes from the environment, optionally seeded from a .env file.
Without a subcommand the bot runs until interrupted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a dotenv file; missing files are ignored")

	root.AddCommand(newRunCmd(opts), newPollOnceCmd(opts))
	return root
}

// loadRuntime seeds the environment from the dotenv file, then loads and
// validates configuration. A *config.ConfigError is returned unwrapped.
func loadRuntime(opts *options, logOutput io.Writer) (config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return config.Config{}, nil, errors.Wrapf(err, "loading %s", opts.envFile)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: Version,
		Output:  logOutput,
	})
	return cfg, logger, nil
}
