package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"obligate/app"
	"obligate/config"
	"obligate/internal/logs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

func Run() ExitCode {
	// .env рядом с бинарём: DSN обычно лежат там
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func NewRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:          "obligate",
		Short:        "Migrate melange IPAM data into quark tables.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./obligate.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.String("source-dsn", "", "melange database DSN")
	pf.String("target-dsn", "", "quark database DSN (defaults to source)")
	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("source.dsn", pf.Lookup("source-dsn"))
	_ = v.BindPFlag("target.dsn", pf.Lookup("target-dsn"))

	load := func() (*config.Config, error) {
		return config.Load(v, cfgFile)
	}

	rootCmd.AddCommand(
		newMigrateCmd(v, load),
		newFlushCmd(load),
	)
	return rootCmd
}

// withApp поднимает App на время одной команды.
func withApp(ctx context.Context, load func() (*config.Config, error), fn func(*app.App) error) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	a := &app.App{}
	if err := a.Initialize(ctx, cfg); err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logs.Logger.WithError(err).Warn("close databases")
		}
	}()
	return fn(a)
}
