package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/modalkit/internal/core/config"
	"github.com/hay-kot/modalkit/internal/core/dialog"
	"github.com/hay-kot/modalkit/internal/tui"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "modalkit", "config.yaml")
}

// NewStack builds the window manager and the dialog service on top of it
// from cfg.
func NewStack(cfg *config.Config, logger zerolog.Logger) (*dialog.Service, *tui.Manager) {
	windows := tui.NewManager(tui.Options{
		MarkdownStyle:   cfg.MarkdownStyle,
		DismissOnEscape: cfg.DismissOnEscape,
		Logger:          logger.With().Str("component", "windows").Logger(),
	})

	launcher := dialog.NewLauncher(
		windows,
		logger.With().Str("component", "launcher").Logger(),
		dialog.WithTemplate(cfg.Template),
		dialog.WithDefaultStyle(cfg.Styles.Default),
	)

	svc := dialog.New(launcher, dialog.Options{
		Styles: dialog.Styles{
			Delete:  cfg.Styles.Delete,
			Login:   cfg.Styles.Login,
			Error:   cfg.Styles.Error,
			Success: cfg.Styles.Success,
		},
		AckInvokesCallback: cfg.AckInvokesCallback,
	})

	return svc, windows
}
