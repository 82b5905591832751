package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/jobpanel/internal/config"
	"github.com/five82/jobpanel/internal/jobsapi"
	"github.com/five82/jobpanel/internal/jobview"
	"github.com/five82/jobpanel/internal/prefs"
	"github.com/five82/jobpanel/internal/state"
	"github.com/five82/jobpanel/internal/ui"
)

// Version is reported in the User-Agent header.
var Version = "0.1"

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses ~/.config/jobpanel/prefs.toml
	Username   string        // overrides the configured username
	PollEvery  time.Duration // zero uses the configured poll_interval
}

// Run boots the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jobpanel: logging disabled: %v\n", err)
		log.SetOutput(io.Discard)
	} else {
		defer func() { _ = logFile.Close() }()
	}

	client, err := NewClient(cfg)
	if err != nil {
		return err
	}

	store := state.New(cfg.PageSize)
	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	log.Printf("jobpanel %s starting for %s against %s", Version, cfg.Username, cfg.APIURL)
	StartPoller(pollCtx, store, client, cfg.Username, cfg.PollInterval)

	userPrefs := prefs.Load(opts.PrefsPath)
	err = ui.Run(ui.Options{
		Context:   ctx,
		Fetcher:   client,
		Store:     store,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})

	stopPolling()
	store.Dispatch(jobview.Invalidated{})
	return err
}

// List performs one refresh, applies actions and returns the resulting view.
// A failed fetch is returned as the error together with the (empty) view.
func List(ctx context.Context, opts Options, actions ...jobview.Action) (jobview.View, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return jobview.View{}, err
	}
	client, err := NewClient(cfg)
	if err != nil {
		return jobview.View{}, err
	}

	store := state.New(cfg.PageSize)
	store.Refresh(ctx, client, cfg.Username)
	for _, action := range actions {
		store.Dispatch(action)
	}
	view := store.View()
	if view.LastError != nil {
		return view, view.LastError
	}
	return view, nil
}

// LoadConfig reads the config file and applies the command line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Username != "" {
		cfg.Username = opts.Username
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	return cfg, nil
}

// NewClient builds the API client described by cfg.
func NewClient(cfg config.Config) (*jobsapi.Client, error) {
	client, err := jobsapi.NewClient(cfg.APIURL, jobsapi.ClientOptions{
		Token:     cfg.APIToken,
		Timeout:   cfg.RequestTimeout,
		UserAgent: "jobpanel/" + Version,
	})
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}

// openLog points the standard logger at path so nothing is written over the
// alternate screen.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "jobpanel")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
