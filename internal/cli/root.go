package cli

import (
	"fmt"
	"os"
	"strings"

	"colegios-cli/internal/api"
	"colegios-cli/internal/format"
	"colegios-cli/internal/session"
	"colegios-cli/internal/store"
	"colegios-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	File    string
	Remote  bool
	BaseURL string
	Format  string
	Pretty  bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "colegios",
		Short:        "School records CLI (local CSV or remote API)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive menu
  colegios

  # Scriptable commands over the local CSV file
  colegios list
  colegios search "san martin"
  colegios add --province Córdoba --name "Colegio Nuevo" --students 350 --year 1985

  # The same commands against the remote API
  colegios --api list
  colegios --api health
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive menu.
			if cmd.HasSubCommands() && len(args) == 0 {
				return tui.Run(tui.Config{
					File:    app.File,
					BaseURL: app.BaseURL,
					Remote:  app.Remote,
				})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.File, "file", envOr("COLEGIOS_FILE", store.DefaultCSVPath), "Path to the authoritative CSV file")
	cmd.PersistentFlags().BoolVar(&app.Remote, "api", false, "Use the remote API instead of the local file")
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("COLEGIOS_API_URL", api.DefaultBaseURL), "Remote API base URL")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("COLEGIOS_FORMAT", "json"), "Output format (json|table)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newProvinceCmd(app))
	cmd.AddCommand(newStudentsCmd(app))
	cmd.AddCommand(newFoundedCmd(app))
	cmd.AddCommand(newSortCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newGetCmd(app))
	cmd.AddCommand(newHealthCmd(app))
	cmd.AddCommand(newSubgroupsCmd(app))

	return cmd
}

// newSession builds the session for the selected backend.
func newSession(app *App) *session.Session {
	if app.Remote {
		backend := session.NewRemoteBacked(api.NewClient(app.BaseURL), store.FileStore{Path: app.File})
		return session.NewRemote(backend)
	}
	return session.NewLocal(app.File)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
