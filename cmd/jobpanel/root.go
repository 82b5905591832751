package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/jobpanel/internal/app"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	prefsPath  string
	username   string
	poll       time.Duration
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		Username:   f.username,
		PollEvery:  f.poll,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "jobpanel",
		Short: "Browse your jobs in a terminal panel",
		Long: `jobpanel shows the jobs submitted by one user as a searchable,
sortable, paginated table that refreshes in the background.

Run without a subcommand to open the panel.`,
		Version:       app.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/jobpanel/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/jobpanel/prefs.toml)")
	pf.StringVarP(&flags.username, "user", "u", "", "show jobs for this user instead of the configured one")
	pf.DurationVar(&flags.poll, "poll", 0, "refresh interval, e.g. 15s (default from config)")

	cmd.AddCommand(newListCmd(flags), newLogsCmd(flags))
	return cmd
}
