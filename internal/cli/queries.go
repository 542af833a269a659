package cli

import (
	"colegios-cli/internal/model"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every school",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession(app)
			if err := sess.Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"data": sess.Schools()}
			if sess.Skipped() > 0 {
				out["skipped"] = sess.Skipped()
			}
			return writeOut(cmd, app, out)
		},
	}
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search schools by name (case- and accent-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := newSession(app).Search(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": found})
		},
	}
	return cmd
}

func newProvinceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "province <name>",
		Short: "List schools whose province matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := newSession(app).FilterProvince(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": found})
		},
	}
	return cmd
}

func newStudentsCmd(app *App) *cobra.Command {
	var min, max int

	cmd := &cobra.Command{
		Use:   "students",
		Short: "Filter schools by student-count range (inclusive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := newSession(app).FilterStudents(cmd.Context(), min, max)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": found})
		},
	}
	cmd.Flags().IntVar(&min, "min", 0, "Minimum student count")
	cmd.Flags().IntVar(&max, "max", 0, "Maximum student count")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func newFoundedCmd(app *App) *cobra.Command {
	var min, max int

	cmd := &cobra.Command{
		Use:   "founded",
		Short: "Filter schools by founding-year range (inclusive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := newSession(app).FilterFounded(cmd.Context(), min, max)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": found})
		},
	}
	cmd.Flags().IntVar(&min, "min", 0, "Earliest founding year")
	cmd.Flags().IntVar(&max, "max", 0, "Latest founding year")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func newSortCmd(app *App) *cobra.Command {
	var by string
	var desc bool

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "List every school sorted by a field",
		RunE: func(cmd *cobra.Command, args []string) error {
			sorted, err := newSession(app).SortBy(cmd.Context(), by, desc)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sorted})
		},
	}
	cmd.Flags().StringVar(&by, "by", model.FieldName, "Sort field (Provincia|Colegio|Cantidad de Estudiantes|Año de Creación)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over the full collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newSession(app).Stats(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": summary})
		},
	}
	return cmd
}
