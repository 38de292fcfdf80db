package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds CLI configuration.
type Config struct {
	DBPath      string
	TablesPath  string
	Table       string
	BaseURL     string
	PathSegment int
	Session     bool
	SessionKey  string
	UpdateURL   bool
	Sort        bool
	Filter      bool
	RowNumbers  bool
	Seed        bool
	LogFile     string
	LogLevel    string
	StartPath   string
	ShowVersion bool
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:], version)
}

func parse(fs *flag.FlagSet, args []string, version string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	fs.StringVar(&config.DBPath, "db", envString("ADMINVIEWS_DB", ""), "Path to SQLite database file (default: ~/.adminviews/adminviews.db)")
	fs.StringVar(&config.TablesPath, "tables", envString("ADMINVIEWS_TABLES", ""), "Path to a TOML table config (default: built-in tables)")
	fs.StringVar(&config.Table, "table", envString("ADMINVIEWS_TABLE", ""), "Default table, overriding the config's default_table")
	fs.StringVar(&config.BaseURL, "base-url", envString("ADMINVIEWS_BASE_URL", "/admin/manage"), "Prefix of table paths")
	fs.IntVar(&config.PathSegment, "path-segment", envInt("ADMINVIEWS_PATH_SEGMENT", 3), "Index of the table name in the \"/\"-split path")
	fs.BoolVar(&config.Session, "session", envBool("ADMINVIEWS_SESSION", true), "Remember the selected table between runs")
	fs.StringVar(&config.SessionKey, "session-key", envString("ADMINVIEWS_SESSION_KEY", "adminviews.selectedTable"), "Session storage key for the selected table")
	fs.BoolVar(&config.UpdateURL, "update-url", envBool("ADMINVIEWS_UPDATE_URL", true), "Push a history entry when the table changes")
	fs.BoolVar(&config.Sort, "sort", envBool("ADMINVIEWS_SORT", true), "Enable sort controls")
	fs.BoolVar(&config.Filter, "filter", envBool("ADMINVIEWS_FILTER", true), "Enable the filter input")
	fs.BoolVar(&config.RowNumbers, "row-numbers", envBool("ADMINVIEWS_ROW_NUMBERS", false), "Number rendered rows")
	fs.BoolVar(&config.Seed, "seed", envBool("ADMINVIEWS_SEED", true), "Fill empty tables with demo data")
	fs.StringVar(&config.LogFile, "log-file", envString("ADMINVIEWS_LOG_FILE", ""), "Log file (default: ~/.adminviews/adminviews.log)")
	fs.StringVar(&config.LogLevel, "log-level", envString("ADMINVIEWS_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&config.StartPath, "start-path", envString("ADMINVIEWS_START_PATH", ""), "Initial path, e.g. /admin/manage/albums")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if config.ShowVersion {
		fmt.Println("adminviews", version)
		os.Exit(0)
	}

	if config.PathSegment < 1 {
		return nil, fmt.Errorf("invalid -path-segment %d: must be at least 1", config.PathSegment)
	}
	if _, err := ParseLevel(config.LogLevel); err != nil {
		return nil, err
	}

	// Set default paths if not specified
	if config.DBPath == "" || config.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, ".adminviews")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		if config.DBPath == "" {
			config.DBPath = filepath.Join(configDir, "adminviews.db")
		}
		if config.LogFile == "" {
			config.LogFile = filepath.Join(configDir, "adminviews.log")
		}
	}

	if config.StartPath == "" {
		config.StartPath = strings.TrimRight(config.BaseURL, "/") + "/"
	}

	return config, nil
}

// ParseLevel maps a -log-level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid -log-level %q", s)
}

// NewLogger opens the log file and returns a text logger writing to it.
// The returned closer closes the file.
func NewLogger(path, level string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
