package cmd

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ucpcal/ucpcal/internal/calendar"
	"github.com/ucpcal/ucpcal/internal/config"
	"github.com/ucpcal/ucpcal/internal/logging"
	"github.com/ucpcal/ucpcal/internal/ui"
	"github.com/ucpcal/ucpcal/internal/watch"
)

var (
	cfgFile string
	logFile string
	cfg     *config.Config
	logger  = zerolog.Nop()
	logDone io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ucpcal [file]",
	Short: "A small terminal calendar",
	Long: `ucpcal keeps a list of named events in a plain text file and lets you
load, add, edit, delete and save them from the terminal.`,
	Args:              fileArg,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runTUI,
	SilenceUsage:      true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: first of $UCPCAL_CONFIG, ~/.config/ucpcal/ucpcalrc, ~/.ucpcalrc)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write a debug log to this file")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadConfigFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path, level := cfg.LogFile, cfg.LogLevel
	if logFile != "" {
		path, level = logFile, "debug"
	}
	logger, logDone, err = logging.New(path, level)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", cfg.Source).Str("command", cmd.Name()).Msg("starting")
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logDone != nil {
		logDone.Close()
	}
}

// startFile picks the calendar to open: the argument if given, otherwise
// the configured default, otherwise none.
func startFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.DefaultFile
}

// errUsage is returned for a command line the root command cannot run.
var errUsage = errors.New("too many arguments")

// fileArg allows at most one calendar file and prints the usage line
// otherwise.
func fileArg(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "usage: %s [file]\n", cmd.Root().Name())
		return errUsage
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	list := calendar.NewList()
	model := ui.NewModel(cfg, list, logger)
	if path := startFile(args); path != "" {
		// a failed load is shown in the status bar, not treated as fatal
		model.Load(path)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if cfg.AutoReload {
		watcher, err := watch.NewFileWatcher(cfg.ReloadDelay, logger, func(path string) {
			p.Send(ui.FileChangedMsg{Path: path})
		})
		if err != nil {
			logger.Warn().Err(err).Msg("file watching disabled")
		} else {
			defer watcher.Close()
			model.SetWatcher(watcher)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
