package cli

import (
	"errors"
	"fmt"
	"strconv"

	"colegios-cli/internal/model"
	"colegios-cli/internal/session"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		province string
		name     string
		students int
		year     int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new school",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := newSession(app).Create(cmd.Context(), model.School{
				Province: province,
				Name:     name,
				Students: students,
				Founded:  year,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}
	cmd.Flags().StringVar(&province, "province", "", "Province (required)")
	cmd.Flags().StringVar(&name, "name", "", "School name (required)")
	cmd.Flags().IntVar(&students, "students", 0, "Student count")
	cmd.Flags().IntVar(&year, "year", 0, "Founding year (0 = unknown)")
	_ = cmd.MarkFlagRequired("province")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var (
		province string
		name     string
		students int
		year     int
	)

	cmd := &cobra.Command{
		Use:   "edit <name-match>",
		Short: "Edit a school located by name; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession(app)
			m, err := resolveOne(cmd, sess, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			var ch model.Changes
			if cmd.Flags().Changed("province") {
				ch.Province = &province
			}
			if cmd.Flags().Changed("name") {
				ch.Name = &name
			}
			if cmd.Flags().Changed("students") {
				ch.Students = &students
			}
			if cmd.Flags().Changed("year") {
				ch.Founded = &year
			}

			updated, err := sess.Update(cmd.Context(), m, ch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&province, "province", "", "New province")
	cmd.Flags().StringVar(&name, "name", "", "New school name")
	cmd.Flags().IntVar(&students, "students", 0, "New student count")
	cmd.Flags().IntVar(&year, "year", 0, "New founding year")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name-match>",
		Short: "Delete a school located by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession(app)
			m, err := resolveOne(cmd, sess, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, fmt.Errorf("refusing to delete %q (%s) without --yes", m.School.Name, m.School.Province))
			}
			if err := sess.Delete(cmd.Context(), m); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m.School, "deleted": true})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Delete without confirmation")
	return cmd
}

func newGetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one school by remote id (API mode only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Remote {
				return writeErr(cmd, errors.New("get works on the remote API; pass --api"))
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid id %q", args[0]))
			}
			rec, err := remoteClient(app).Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
	return cmd
}

// resolveOne turns a name match into exactly one record, listing the
// candidates on stderr when the match is ambiguous.
func resolveOne(cmd *cobra.Command, sess *session.Session, name string) (session.Match, error) {
	m, err := sess.Resolve(cmd.Context(), name)
	var amb *session.AmbiguousError
	if errors.As(err, &amb) {
		for _, c := range amb.Matches {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s (%s)\n", c.School.Name, c.School.Province)
		}
	}
	return m, err
}
