package cli

import (
	"obligate/app"
	"obligate/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCmd(v *viper.Viper, load func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy networks, subnets, routes, ips, ports and macs from melange to quark.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(a *app.App) error {
				_, err := a.Migrate(cmd.Context())
				return err
			})
		},
	}

	f := cmd.Flags()
	f.Bool("flush", false, "drop and recreate quark tables before migrating")
	f.Bool("dry-run", false, "run every stage in memory, write nothing")
	f.String("report", "", "write a YAML report to this file")
	f.Int("batch-size", 500, "rows per INSERT")
	_ = v.BindPFlag("migrate.flush", f.Lookup("flush"))
	_ = v.BindPFlag("migrate.dry_run", f.Lookup("dry-run"))
	_ = v.BindPFlag("migrate.report", f.Lookup("report"))
	_ = v.BindPFlag("migrate.batch_size", f.Lookup("batch-size"))
	return cmd
}

func newFlushCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Drop and recreate quark tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), load, func(a *app.App) error {
				return a.Flush(cmd.Context())
			})
		},
	}
}
