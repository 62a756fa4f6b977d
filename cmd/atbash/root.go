package main

import (
	"fmt"

	"github.com/dyne/atbash/internal/clip"
	"github.com/dyne/atbash/internal/config"
	"github.com/dyne/atbash/internal/i18n"
	"github.com/dyne/atbash/internal/log"
	"github.com/dyne/atbash/internal/theme"
	"github.com/dyne/atbash/internal/transform"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	Verbose    bool
	ConfigPath string
	Lang       string
	Theme      string
	Plugins    []string

	clipboard clip.Writer
}

// settings is what every command needs once flags and the config file
// have been merged; flags win over the file.
type settings struct {
	cfg    *config.Config
	lang   i18n.Language
	mode   theme.Mode
	logger *log.Logger
}

func newRootCmd(clipboard clip.Writer) *cobra.Command {
	rootOpts := &globalOptions{clipboard: clipboard}
	root := &cobra.Command{
		Use:           "atbash",
		Short:         "Atbash cipher for Latin letters and Hangul syllables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return transform.LoadPlugins(rootOpts.Plugins)
		},
	}

	root.PersistentFlags().BoolVar(&rootOpts.Verbose, "verbose", false, "enable debug logging")
	root.PersistentFlags().StringVar(&rootOpts.ConfigPath, "config", "", "configuration file (yaml)")
	root.PersistentFlags().StringVar(&rootOpts.Lang, "lang", "", "message language (ko|en)")
	root.PersistentFlags().StringVar(&rootOpts.Theme, "theme", "", "terminal colour theme (light|dark)")
	root.PersistentFlags().StringSliceVar(&rootOpts.Plugins, "plugin", nil, "cipher plugin .so path (repeatable)")

	root.AddCommand(transformCmd(rootOpts))
	root.AddCommand(stringsCmd(rootOpts))
	root.AddCommand(dbCmd(rootOpts))
	return root
}

func (o *globalOptions) load(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	lang := cfg.Language
	if o.Lang != "" {
		lang = o.Lang
	}
	themeName := cfg.Theme
	if o.Theme != "" {
		themeName = o.Theme
	}
	mode, err := theme.ParseMode(themeName)
	if err != nil {
		return nil, err
	}
	level := log.LevelWarn
	if o.Verbose {
		level = log.LevelDebug
	}
	return &settings{
		cfg:    cfg,
		lang:   i18n.Parse(lang),
		mode:   mode,
		logger: log.New(level, cmd.ErrOrStderr()),
	}, nil
}

func (s *settings) text(key i18n.Key) string {
	return i18n.Text(s.lang, key)
}

func (s *settings) errorf(key i18n.Key, err error) error {
	return fmt.Errorf("%s: %w", s.text(key), err)
}
