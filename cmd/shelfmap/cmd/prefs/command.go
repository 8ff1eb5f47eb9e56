// Package prefs provides the prefs command for the theme and view settings.
package prefs

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfmap/cmd/application"
	"github.com/agentstation/shelfmap/internal/cmd/alerts"
	"github.com/agentstation/shelfmap/internal/cmd/output"
	"github.com/agentstation/shelfmap/pkg/errors"
	"github.com/agentstation/shelfmap/pkg/preferences"
)

// NewCommand creates the prefs command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		GroupID: "management",
		Short:   "Show or change the theme and view preferences",
		Long: `Prefs reads and writes the two display settings: the color theme (light or
dark) and the catalog view (grid or list). The store is chosen with the
preferences setting: a YAML file path, sqlite:///path, postgres://... or
memory:.`,
		Example: `  shelfmap prefs get
  shelfmap prefs theme toggle
  shelfmap prefs view set list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newGetCommand(app), newThemeCommand(app), newViewCommand(app))
	return cmd
}

func newGetCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, app)
		},
	}
}

func newThemeCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Change the color theme",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				c, err := themeController(ctx, app)
				if err != nil {
					return err
				}
				theme, err := c.Toggle(ctx)
				if err != nil {
					return err
				}
				notify(cmd, app, "Theme set to %s", theme)
				return show(cmd, app)
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Set the color theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(preferences.ThemeLight), string(preferences.ThemeDark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				theme, ok := preferences.ParseTheme(args[0])
				if !ok {
					return errors.NewValidationError("theme", args[0], "must be light or dark")
				}
				ctx := cmd.Context()
				c, err := themeController(ctx, app)
				if err != nil {
					return err
				}
				if err := c.Set(ctx, theme); err != nil {
					return err
				}
				notify(cmd, app, "Theme set to %s", theme)
				return show(cmd, app)
			},
		},
	)
	return cmd
}

func newViewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Change the catalog view",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between grid and list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				c, err := viewController(ctx, app)
				if err != nil {
					return err
				}
				view, err := c.Toggle(ctx)
				if err != nil {
					return err
				}
				notify(cmd, app, "View set to %s", view)
				return show(cmd, app)
			},
		},
		&cobra.Command{
			Use:       "set <grid|list>",
			Short:     "Set the catalog view",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(preferences.ViewGrid), string(preferences.ViewList)},
			RunE: func(cmd *cobra.Command, args []string) error {
				view, ok := preferences.ParseViewMode(args[0])
				if !ok {
					return errors.NewValidationError("view", args[0], "must be grid or list")
				}
				ctx := cmd.Context()
				c, err := viewController(ctx, app)
				if err != nil {
					return err
				}
				if err := c.Set(ctx, view); err != nil {
					return err
				}
				notify(cmd, app, "View set to %s", view)
				return show(cmd, app)
			},
		},
	)
	return cmd
}

func themeController(ctx context.Context, app application.Application) (*preferences.ThemeController, error) {
	store, err := app.Preferences(ctx)
	if err != nil {
		return nil, err
	}
	c := preferences.NewThemeController(store)
	if _, err := c.Init(ctx, app.PrefersDark()); err != nil {
		return nil, err
	}
	return c, nil
}

func viewController(ctx context.Context, app application.Application) (*preferences.ViewController, error) {
	store, err := app.Preferences(ctx)
	if err != nil {
		return nil, err
	}
	c := preferences.NewViewController(store)
	if _, err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func notify(cmd *cobra.Command, app application.Application, format string, args ...any) {
	alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Success(format, args...)
}

func show(cmd *cobra.Command, app application.Application) error {
	ctx := cmd.Context()
	store, err := app.Preferences(ctx)
	if err != nil {
		return err
	}
	snap, err := preferences.Load(ctx, store, app.PrefersDark())
	if err != nil {
		return err
	}
	return output.Print(cmd.OutOrStdout(), app.OutputFormat(), output.NewPreferences(snap))
}
