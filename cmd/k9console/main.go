// Package main provides the k9console CLI entry point.
// k9console hosts the example game director behind a developer console: an
// interactive prompt or a batch file feeds console lines to the frame loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"k9console/internal/config"
	"k9console/internal/console"
	"k9console/internal/logger"
	"k9console/internal/shell"
	"k9console/internal/ui"
	"k9console/internal/version"
)

var (
	configFile string
	keepGoing  bool
	verbose    bool

	settings = config.New()
	cfg      *config.Config
)

// rootCmd runs the interactive console when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "k9console",
	Short: "Developer console for the k9 frame loop",
	Long: `k9console runs the game director system inside a frame loop and exposes its
commands and debug windows through an interactive developer console.`,
	PersistentPreRunE: loadConfig,
	RunE:              runInteractive,
	SilenceUsage:      true,
}

// runCmd is the explicit form of the default behavior
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console",
	RunE:  runInteractive,
}

// execCmd runs a file of console lines without a prompt
var execCmd = &cobra.Command{
	Use:   "exec <file>",
	Short: "Execute console lines from a file",
	Long: `Execute each line of a file as a console command, then exit.
Blank lines and lines starting with # are skipped. Execution stops at the first
failing line unless --keep-going is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatchFile(cmd.Context(), args[0], cfg, keepGoing)
	},
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		if verbose {
			cmd.Println(version.GetDetailedVersion())
			return
		}
		cmd.Println(version.GetFormattedVersion())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Set log level (trace|debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.StringVar(&configFile, "config", "", "Config file [default: k9console.yaml in the user config dir or working dir]")

	mustBind(settings, "log.level", rootCmd, "log-level")
	mustBind(settings, "log.file", rootCmd, "log-file")
	mustBind(settings, "test_mode", rootCmd, "test-mode")

	execCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue after a failing line")
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed build information")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(versionCmd)
}

func mustBind(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	testMode := settings.GetBool("test_mode")

	loaded, err := config.Load(settings, config.Options{
		ConfigFile: configFile,
		SkipDotEnv: testMode,
	})
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Configure(cfg.Log.Level, cfg.Log.File, cfg.TestMode); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	return nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	logger.Info("Starting k9console", "version", version.Version)

	app, err := newApp(cfg, os.Stdout, os.Stdout)
	if err != nil {
		return err
	}
	if !cfg.TestMode {
		config.Watch(settings, func(updated *config.Config) {
			app.SetMaxFPS(updated.MaxFPS)
			app.SetTheme(ui.GetTheme(updated.UI.Theme))
		})
	}

	ctx := cmd.Context()
	shellCtx, cancelShell := context.WithCancel(ctx)
	defer cancelShell()

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
		cancelShell()
	}()

	sh := shell.New(app, console.NewCompleter(app.Console()), cfg.Console.Prompt)
	sh.Println(version.GetFormattedVersion() + " - developer console")
	sh.Println("Type 'help' for commands or 'quit' to exit.")
	sh.Run(shellCtx)

	app.Stop()
	return <-done
}
