package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/vcode/core"
	"github.com/jask/vcode/internal/config"
	"github.com/jask/vcode/internal/journal"
	"github.com/jask/vcode/internal/logging"
	"github.com/jask/vcode/internal/tui"
)

var (
	cfgFile string
	verbose bool
	watch   bool
	v       = config.New()
)

// rootCmd prompts for a code and prints it on stdout once submitted.
var rootCmd = &cobra.Command{
	Use:   "vcode",
	Short: "Prompt for a verification code in the terminal",
	Long: `vcode shows a row of single-character cells and collects a verification
code one character at a time. The UI is drawn on stderr; the submitted code
is printed on stdout so the command can be used in scripts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPrompt(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/vcode/config.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.String("log", "", "log file path")
	pf.String("journal-path", "", "journal database path")
	pf.Bool("journal", false, "record completed codes in the journal")

	f := rootCmd.Flags()
	f.IntP("length", "n", core.DefaultLength, "number of cells")
	f.String("value", "", "initial value")
	f.StringP("pattern", "p", "", "regular expression every value must match")
	f.String("fragment", "", "pattern fragment repeated up to the code length")
	f.String("preset", "", "named pattern: alnum, alpha, hex, numeric")
	f.Bool("password", false, "mask entered characters")
	f.Bool("disabled", false, "render the cells without accepting input")
	f.Bool("paste", true, "accept pasted text")
	f.Bool("autofocus", true, "focus the first cell on start")
	f.String("container-class", "", "container style: default, compact, accent")
	f.String("input-class", "", "cell style: default, compact, accent")
	f.String("title", "", "title shown above the cells")
	f.Bool("exit-on-complete", false, "exit as soon as every cell is filled")
	f.BoolVar(&watch, "watch", false, "reload widget options when the config file changes")

	bind := map[string]string{
		"log.path":        "log",
		"journal.path":    "journal-path",
		"journal.enabled": "journal",
	}
	for k, name := range bind {
		_ = v.BindPFlag(k, pf.Lookup(name))
	}
	bind = map[string]string{
		"widget.length":          "length",
		"widget.value":           "value",
		"widget.pattern":         "pattern",
		"widget.fragment":        "fragment",
		"widget.preset":          "preset",
		"widget.password":        "password",
		"widget.disabled":        "disabled",
		"widget.allow_paste":     "paste",
		"widget.auto_focus":      "autofocus",
		"widget.container_class": "container-class",
		"widget.input_class":     "input-class",
		"ui.title":               "title",
		"ui.exit_on_complete":    "exit-on-complete",
	}
	for k, name := range bind {
		_ = v.BindPFlag(k, f.Lookup(name))
	}

	rootCmd.AddCommand(historyCmd)
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := config.ReadInConfig(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPrompt(ctx context.Context) error {
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	opts, err := cfg.WidgetOptions()
	if err != nil {
		return fmt.Errorf("widget options: %w", err)
	}

	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting prompt",
		zap.Int("length", opts.Length),
		zap.String("pattern", opts.Pattern.String()),
		zap.Bool("password", opts.Password))

	var rec tui.Recorder
	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
		logger.Debug("journal open", zap.String("path", cfg.Journal.Path), zap.String("session", j.Session()))
		rec = j
	}

	app := tui.New(ctx, cfg, opts, rec, logger)
	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if watch && v.ConfigFileUsed() != "" {
		config.Watch(v, func(next config.Config, err error) {
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				p.Send(core.ErrorCmd(err)())
				return
			}
			nextOpts, err := next.WidgetOptions()
			if err != nil {
				logger.Warn("config reload rejected", zap.Error(err))
				p.Send(core.ErrorCmd(err)())
				return
			}
			logger.Info("config reloaded", zap.Int("length", nextOpts.Length))
			p.Send(core.OptionsMsg{Options: nextOpts})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if code, ok := app.Submitted(); ok {
		fmt.Println(code)
		return nil
	}
	return fmt.Errorf("no code entered")
}
