package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aide/config"
	"aide/internal/adapter/index"
	"aide/internal/adapter/prompt"
	"aide/internal/adapter/store"
	"aide/internal/logger"
	"aide/internal/port"
	"aide/internal/usecase"
)

var (
	cfgFile        string
	cfg            *config.Config
	dataDir        string
	assumeYes      bool
	nonInteractive bool
	logLevel       string
	log            *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aide",
	Short: "Personal tasks, notes and config keys with forgiving name lookup",
	Long: `aide keeps tasks, notes and config key/value pairs in a local database.
Every name you type is matched against what is stored: exact and
case-insensitive matches are used directly, close matches are offered
as a suggestion you can accept.

Example usage:
  aide task create write_report   # Create a task
  aide task log write_reprt done  # "Did you mean 'write_report'?"
  aide note add commands "git log --oneline"
  aide config set database_url postgres://localhost/app`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if dataDir == "" {
			dataDir = config.DefaultDataDir()
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dataDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("yes") {
			cfg.Prompt.AssumeYes = assumeYes
		}
		if cmd.Flags().Changed("non-interactive") {
			cfg.Prompt.NonInteractive = nonInteractive
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		log, err = logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <dir>/aide.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "data directory (default is ~/.aide)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "accept every suggestion without asking")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; suggestions are declined")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func GetConfig() *config.Config {
	return cfg
}

func GetDataDir() string {
	return dataDir
}

// app wires the store, the name indices and the use cases for one command.
type app struct {
	store    *store.BoltStore
	catalog  *usecase.Catalog
	tasks    *usecase.TaskUseCase
	notes    *usecase.NoteUseCase
	settings *usecase.SettingUseCase
	maint    *usecase.MaintenanceUseCase
	prompter port.Prompter
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg := GetConfig()
	dir := GetDataDir()
	log := logger.ForCommand(cmd.Context(), cmd.CommandPath())

	if err := config.EnsureDataDir(dir, cfg); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := config.DBPath(dir, cfg)
	st, err := store.NewBoltStore(dbPath, cfg.OpenTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	migrationResult, err := st.CheckMigration()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if migrationResult.NeedsMigration {
		log.Info("running schema migration", zap.String("reason", migrationResult.Reason))
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	scaling, err := index.ParseTFScaling(cfg.Match.TFScaling)
	if err != nil {
		st.Close()
		return nil, err
	}

	prompter := prompt.New(cfg.Prompt.AssumeYes, cfg.Prompt.NonInteractive)
	catalog := usecase.NewCatalog(st, usecase.CatalogOptions{
		Scaling:   scaling,
		CacheSize: cfg.Match.CacheSize,
		CacheTTL:  cfg.CacheTTL(),
	}, log)
	names := usecase.NewNameResolver(catalog, prompter, log)

	a := &app{
		store:    st,
		catalog:  catalog,
		tasks:    usecase.NewTaskUseCase(st, catalog, names, filepath.Join(dir, cfg.Tasks.LogDir), cfg.Tasks.DefaultPriority, log),
		notes:    usecase.NewNoteUseCase(st, catalog, names, filepath.Join(dir, cfg.Notes.FileDir), cfg.Notes.Excludes, log),
		settings: usecase.NewSettingUseCase(st, catalog, names, log),
		prompter: prompter,
	}
	a.maint = usecase.NewMaintenanceUseCase(st, catalog, a.notes, log)

	if err := a.notes.EnsureDefault(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create default note: %w", err)
	}

	log.Debug("opened store", zap.String("path", dbPath))
	return a, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
