package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/jobpanel/internal/app"
	"github.com/five82/jobpanel/internal/logtail"
)

func newLogsCmd(root *rootFlags) *cobra.Command {
	var (
		lines int
		grep  string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the panel's log file",
		Long: `Print the tail of the log file the panel writes while it runs.

API errors are logged with the X-Request-ID sent with the request, so
  jobpanel logs --grep <request id>
finds every line about one request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(root.options())
			if err != nil {
				return err
			}

			var out []string
			if grep != "" {
				out, err = logtail.ReadMatching(cfg.LogFile, lines, grep)
			} else {
				out, err = logtail.Read(cfg.LogFile, lines)
			}
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			if len(out) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log lines in %s\n", cfg.LogFile)
				return nil
			}
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to print, 0 for all")
	cmd.Flags().StringVar(&grep, "grep", "", "only lines containing this text (case-insensitive)")
	return cmd
}
