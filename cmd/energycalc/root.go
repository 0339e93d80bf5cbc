package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jgoulah/energycalc/internal/config"
	"github.com/jgoulah/energycalc/internal/database"
	"github.com/jgoulah/energycalc/internal/logger"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	appCfg *config.Config
	appLog = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "energycalc",
	Short: "Estimate household electricity use for a week",
	Long: `EnergyCalc estimates daily electricity use from household size and appliance usage.
Enter each day of the week, then view totals, averages, tables and charts.
The current week is kept in a local SQLite file until it is reset or a new session is started.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "session database file (default is ./energycalc.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// setup loads config and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appCfg = cfg

	level := cfg.LogLevel
	if logLevel != "" {
		if !logger.ValidLevel(logLevel) {
			return fmt.Errorf("unknown log level: %s", logLevel)
		}
		level = logLevel
	}
	appLog = logger.New(level)
	appLog.Debugw("config loaded", "path", getConfigPath())
	return nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "energycalc.db"
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openDB opens the database connection
func openDB() (*database.DB, error) {
	path := getDBPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	appLog.Debugw("opening session store", "path", path)
	return database.New(path)
}

// openSession opens the database and returns the active session, starting one if needed
func openSession(ctx context.Context) (*database.DB, *database.Session, error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	session, err := db.EnsureSession(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	appLog.Debugw("using session", "session_id", session.ID)
	return db, session, nil
}

// welcome prints the household line when a name is configured
func welcome() {
	h := appCfg.Household
	if h.Name == "" {
		return
	}
	fmt.Printf("Welcome, %s!\n", h.Name)
	fmt.Printf("Age: %d | City: %s | Area: %s | Housing: %s\n", h.Age, h.City, h.Area, h.HousingType)
}
