package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/browse"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/catalog"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/list"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/prefs"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/serve"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/show"
	"github.com/agentstation/shelfmap/cmd/shelfmap/cmd/version"
	"github.com/agentstation/shelfmap/internal/cmd/completion"
	"github.com/agentstation/shelfmap/internal/cmd/output"
)

// Execute runs the CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "shelfmap",
		Short:   "Book catalog browser",
		Version: a.version,
		Long: `Shelfmap loads a bookstore's two spreadsheet exports, reconciles them into
one catalog and lets you search, filter and page through it from the
terminal or over HTTP.

The primary export holds one row per book. The secondary export carries
overrides such as prices and the category codes used to group books.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Catalog Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", a.config.ConfigFile, "config file (default is $HOME/.shelfmap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml (default: table on a terminal, json otherwise)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	_ = rootCmd.RegisterFlagCompletionFunc("format", completion.Fixed(
		string(output.FormatTable), string(output.FormatJSON), string(output.FormatYAML)))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", completion.Fixed("trace", "debug", "info", "warn", "error"))

	rootCmd.SetVersionTemplate("shelfmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand applies flags on top of the loaded configuration before any
// command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := loadConfigFile(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(catalog.NewCategoriesCommand(a))
	rootCmd.AddCommand(catalog.NewFacetsCommand(a))
	rootCmd.AddCommand(browse.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(prefs.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a flag defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a flag defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
