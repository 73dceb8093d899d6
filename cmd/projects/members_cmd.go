package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage project memberships",
	}
	cmd.AddCommand(newMembersAddCmd())
	return cmd
}

func newMembersAddCmd() *cobra.Command {
	var (
		projectID int64
		userID    int64
		roles     []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user to a project with the given roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeDB, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			svc := app.Service(services.MemberService{}).(*services.MemberService)
			ctx := composables.WithPool(cmd.Context(), app.DB())
			created, err := composables.InTxResult(ctx, func(txCtx context.Context) (member.Member, error) {
				return svc.Add(txCtx, projectID, userID, roles...)
			})
			if err != nil {
				return fmt.Errorf("add member: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id (required)")
	cmd.Flags().Int64Var(&userID, "user", 0, "User id (required)")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Role name, repeatable (required)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
