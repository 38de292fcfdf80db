package main

import (
	"context"
	"fmt"
	"os"

	"adminviews/cmd"
	"adminviews/internal/db"
	"adminviews/internal/dom"
	"adminviews/internal/tableconfig"
	"adminviews/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file
	logger, logCloser, err := cmd.NewLogger(config.LogFile, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	actions := ui.NewActionLog()
	tables, err := tableconfig.Load(config.TablesPath, actions.Callbacks())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load table config: %v\n", err)
		os.Exit(1)
	}
	if config.Table != "" {
		if !tables.Tables.Has(config.Table) {
			fmt.Fprintf(os.Stderr, "Unknown table %q\n", config.Table)
			os.Exit(1)
		}
		tables.DefaultTable = config.Table
	}

	// Open database
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	ctx := context.Background()
	if config.Seed {
		if err := db.Seed(ctx, database); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed database: %v\n", err)
			os.Exit(1)
		}
	}

	source := db.NewSource(database, logger)
	window := dom.NewWindow(config.StartPath, db.NewSessionStore(database))

	m, err := ui.New(ctx, ui.Options{
		Config:             tables,
		Fetch:              source.FetchTableData,
		Window:             window,
		Actions:            actions,
		BaseURL:            config.BaseURL,
		PathSegment:        config.PathSegment,
		SaveTableInSession: config.Session,
		SessionKey:         config.SessionKey,
		UpdateURL:          config.UpdateURL,
		Sorting:            config.Sort,
		Filtering:          config.Filter,
		RowNumbers:         config.RowNumbers,
		Logger:             logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	logger.Info("starting dashboard", "version", version, "db", config.DBPath, "path", config.StartPath)

	// Create and run Bubble Tea app
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
