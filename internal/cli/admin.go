package cli

import (
	"errors"

	"colegios-cli/internal/api"
	"colegios-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the CSV file and subgroup skeleton if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := store.FileStore{Path: app.File}
			if err := fs.Init(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":      app.File,
				"subgroups": store.SubgroupsRoot(app.File),
			}})
		},
	}
	return cmd
}

func newSubgroupsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subgroups",
		Short: "Inspect the materialized projection trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := store.Info(app.File)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": info})
		},
	}
	return cmd
}

func newHealthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the remote API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Remote {
				return writeErr(cmd, errors.New("health checks the remote API; pass --api"))
			}
			status, err := remoteClient(app).Health(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": status})
		},
	}
	return cmd
}

func remoteClient(app *App) *api.Client {
	return api.NewClient(app.BaseURL)
}
