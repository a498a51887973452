package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"account-picker/pkg/accounts"
	"account-picker/pkg/config"
	"account-picker/pkg/logging"
	"account-picker/pkg/onboarding"
)

// version is set with -ldflags at release time.
var version = "dev"

var (
	errAborted     = errors.New("aborted")
	errNotTerminal = errors.New("the picker needs an interactive terminal (try 'account-picker accounts list')")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "account-picker: %v\n", err)
		os.Exit(exitCodeFromErr(err))
	}
}

// app carries state resolved once per invocation by the root command.
type app struct {
	configPath   string
	accountsFile string
	theme        string
	logFile      string
	logLevel     string

	cfg      *config.Config
	cfgUsed  string
	logger   *log.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "account-picker",
		Short: "Choose which account to use for this session",
		Long: `account-picker shows the registered accounts and lets you pick one,
or start adding a new one.

Examples:
  account-picker
  account-picker accounts add --label work --kind apikey < key.txt
  account-picker accounts use <id>
  account-picker --theme catppuccin --log-file ~/.cache/account-picker.log`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPicker(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to YAML config (defaults to XDG paths if empty)")
	pf.StringVar(&a.accountsFile, "accounts-file", "", "Path to the accounts registry (overrides config)")
	pf.StringVar(&a.theme, "theme", "", "Theme: dark|light|catppuccin|none|auto (overrides config)")
	pf.StringVar(&a.logFile, "log-file", "", "Write logs to this file, or stderr|stdout (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newAccountsCmd(a), newConfigCmd(a))
	return root
}

// setup loads config, applies flag overrides, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("accounts-file") {
		cfg.AccountsFile = strings.TrimSpace(a.accountsFile)
	}
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("log-file") {
		cfg.Log.File = strings.TrimSpace(a.logFile)
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.cfgUsed, a.logger, a.closeLog = cfg, used, logger, closeLog
	logger.Debug("config loaded", "path", used, "theme", cfg.Theme)
	return nil
}

func (a *app) directory() (*accounts.FileDirectory, error) {
	p, err := a.cfg.AccountsPath()
	if err != nil {
		return nil, err
	}
	return accounts.NewFileDirectory(p)
}

func (a *app) runPicker(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	dir, err := a.directory()
	if err != nil {
		return err
	}

	keys := onboarding.NewKeyMap(a.cfg.Keys)
	theme := onboarding.ThemeByName(a.cfg.Theme)

	// Drop terminal replies (focus, OSC) queued before the picker owns the tty.
	flushTTYInput()

	res, err := onboarding.RunTUI(cmd.Context(), onboarding.RunOptions{
		Directory: dir,
		Keys:      &keys,
		Theme:     &theme,
		Logger:    a.logger,
		AltScreen: a.cfg.AltScreen,
	})
	if err != nil {
		return err
	}
	if res.Aborted || !res.Selected {
		return errAborted
	}

	out := cmd.OutOrStdout()
	switch res.Selection.Kind {
	case onboarding.SelectionAddNew:
		fmt.Fprintln(out, "Continue to sign in to add a new account.")
	default:
		fmt.Fprintf(out, "Using %s account (%s).\n", res.Selection.AccountKind, res.SignIn)
	}
	return nil
}

func exitCodeFromErr(err error) int {
	switch {
	case errors.Is(err, errAborted):
		return 130
	case errors.Is(err, errNotTerminal):
		return 2
	default:
		return 1
	}
}
