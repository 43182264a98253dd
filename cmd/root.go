package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/giantswarm/mcpbind/internal/cli"
	"github.com/giantswarm/mcpbind/internal/config"
	"github.com/giantswarm/mcpbind/internal/formatting"
	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/logging"
	"github.com/giantswarm/mcpbind/pkg/shutdown"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error, including invalid configuration.
	ExitCodeError = 1
	// ExitCodeNotFound indicates that a name did not resolve on the server.
	ExitCodeNotFound = 2
	// ExitCodeValidation indicates that arguments did not match the signature.
	ExitCodeValidation = 3
	// ExitCodeConnection indicates that the server could not be reached.
	ExitCodeConnection = 4
)

var (
	rootFlags cli.CommandFlags
	// loadedConfig is populated before any subcommand runs.
	loadedConfig = config.Default()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcpbind",
	Short: "Use the tools, resources and prompts of an MCP server from the shell",
	Long: `mcpbind connects to a Model Context Protocol server and exposes what it
offers under stable local names: getWeather becomes get_weather, with a
signature derived from its input schema.

Select the server with --server (from the configuration file), --command
(a local stdio server) or --url (a remote server).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with a code describing the
// failure, if any. Shutdown hooks run before the process exits, also on
// SIGINT and SIGTERM.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcpbind version %s\n" .Version}}`)

	ctx, cancel := shutdown.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	shutdown.Run()

	if err != nil {
		fmt.Fprintln(os.Stderr, text.FgRed.Sprint("Error: ")+err.Error())
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error onto one of the exit codes.
func getExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case bind.IsNotFound(err):
		return ExitCodeNotFound
	case bind.IsValidation(err):
		return ExitCodeValidation
	case bind.IsConnection(err):
		return ExitCodeConnection
	}
	return ExitCodeError
}

// setup loads the configuration and initializes logging and output.
func setup(cmd *cobra.Command, _ []string) error {
	if err := formatting.ValidateOutputFormat(rootFlags.OutputFormat); err != nil {
		return err
	}
	if rootFlags.NoColor || os.Getenv("NO_COLOR") != "" {
		text.DisableColors()
	}

	cfg, err := config.Load(rootFlags.ConfigPath)
	if err != nil {
		return err
	}
	if rootFlags.LogLevel != "" {
		cfg.LogLevel = rootFlags.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &bind.ConfigError{Message: err.Error(), Suggestions: []string{"use one of: debug, info, warn, error"}, Err: err}
	}
	if err := logging.InitWithFormat(level, rootFlags.LogFormat, cmd.ErrOrStderr()); err != nil {
		return &bind.ConfigError{Message: err.Error(), Err: err}
	}

	loadedConfig = cfg
	logging.Debug("CLI", "Configuration loaded from %s with %d servers", cfg.Path, len(cfg.Servers))
	return nil
}

// newFormatter builds the output formatter selected by the flags.
func newFormatter(template string) (formatting.Formatter, error) {
	return formatting.New(formatting.Options{
		Format:   formatting.OutputFormat(rootFlags.OutputFormat),
		Color:    !rootFlags.NoColor,
		Template: template,
	})
}

func init() {
	cli.RegisterCommonFlags(rootCmd, &rootFlags)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newMockServerCmd())
}
