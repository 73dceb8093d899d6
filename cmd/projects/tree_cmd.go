package main

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

func newTreeCmd() *cobra.Command {
	var memberID int64

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the project hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeDB, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := composables.WithPool(cmd.Context(), app.DB())
			svc := app.Service(services.ProjectService{}).(*services.ProjectService)
			var items []project.Project
			if memberID > 0 {
				items, err = svc.GetByMember(ctx, memberID)
			} else {
				items, err = svc.GetAll(ctx)
			}
			if err != nil {
				return err
			}
			return renderTree(cmd.OutOrStdout(), services.WithLevel(items))
		},
	}
	cmd.Flags().Int64Var(&memberID, "member", 0, "Only projects this user is a member of")
	return cmd
}

// renderTree writes one project per line indented by two spaces per level.
func renderTree(w io.Writer, seq iter.Seq2[project.Project, int]) error {
	for p, level := range seq {
		if _, err := fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", level), p.Name(), p.Identifier()); err != nil {
			return err
		}
	}
	return nil
}
