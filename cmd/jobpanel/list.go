package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/jobpanel/internal/app"
	"github.com/five82/jobpanel/internal/jobview"
)

type listFlags struct {
	query    string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func newListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of jobs and exit",
		Long: `Fetch the user's jobs once and print a single page, using the same
search, sort and paging rules as the panel.

Examples:
  jobpanel list                            # First page
  jobpanel list --query running            # Running jobs
  jobpanel list --sort startTime --desc    # Newest first
  jobpanel list --page 2 --page-size 25    # Second page of 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := flags.actions()
			if err != nil {
				return err
			}
			view, err := app.List(cmd.Context(), root.options(), actions...)
			if err != nil {
				return err
			}
			return writeJobTable(cmd.OutOrStdout(), view)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.query, "query", "q", "", "only jobs whose tags, type, status or payload id contain this text")
	f.StringVar(&flags.sort, "sort", "", "sort column: tags, jobType, status, payloadId or startTime")
	f.BoolVar(&flags.desc, "desc", false, "sort descending")
	f.IntVar(&flags.page, "page", 1, "page number, starting at 1")
	f.IntVar(&flags.pageSize, "page-size", 0, "rows per page (default from config)")
	return cmd
}

// actions converts the flags into view actions, ordered so that the page
// is chosen after everything that resets it.
func (f listFlags) actions() ([]jobview.Action, error) {
	var actions []jobview.Action

	if f.pageSize < 0 {
		return nil, fmt.Errorf("--page-size must be positive, got %d", f.pageSize)
	}
	if f.pageSize > 0 {
		actions = append(actions, jobview.PageSizeChanged{Size: f.pageSize})
	}

	if q := strings.TrimSpace(f.query); q != "" {
		actions = append(actions, jobview.QueryChanged{Query: q})
	}

	switch {
	case f.sort != "":
		col, err := jobview.ParseColumn(f.sort)
		if err != nil {
			return nil, fmt.Errorf("--sort: %w", err)
		}
		actions = append(actions, jobview.SortSet{Column: col, Descending: f.desc})
	case f.desc:
		return nil, errors.New("--desc requires --sort")
	}

	if f.page < 1 {
		return nil, fmt.Errorf("--page must be at least 1, got %d", f.page)
	}
	if f.page > 1 {
		actions = append(actions, jobview.PageChanged{Target: jobview.PageExact, Index: f.page - 1})
	}
	return actions, nil
}

// writeJobTable prints the visible page followed by a page summary.
func writeJobTable(w io.Writer, v jobview.View) error {
	cols := jobview.Columns()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(cols))
	for _, col := range cols {
		headers = append(headers, strings.ToUpper(col.Title()))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range v.Rows {
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, cellText(col.Value(row)))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	switch {
	case v.Loaded == 0:
		fmt.Fprintln(w, "No jobs found")
	case v.Empty():
		fmt.Fprintf(w, "No jobs match %q\n", v.Query)
	}

	fmt.Fprintf(w, "\nPage %d of %d, %d of %d jobs\n", v.PageIndex+1, v.PageCount, v.Matched, v.Loaded)
	if v.Dropped > 0 {
		fmt.Fprintf(w, "%d malformed job(s) skipped\n", v.Dropped)
	}
	return nil
}

// cellText keeps tabs and newlines in job fields from breaking the columns.
func cellText(s string) string {
	if s == "" {
		return "-"
	}
	return strings.Join(strings.Fields(s), " ")
}
