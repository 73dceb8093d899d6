package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/modules/costs/services"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

func newUsersCmd() *cobra.Command {
	var ownerID, requesterID int64

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Print the selectable users of the cost query user filter as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closeDB, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := composables.WithPool(cmd.Context(), app.DB())
			requester := user.Anonymous()
			if requesterID > 0 {
				userService := app.Service(coreservices.UserService{}).(*coreservices.UserService)
				requester, err = userService.GetByID(ctx, requesterID)
				if err != nil {
					if errors.Is(err, user.ErrNotFound) {
						return errors.New("--requester names an unknown user")
					}
					return err
				}
			}

			svc := app.Service(services.UserFilterService{}).(*services.UserFilterService)
			values, err := svc.AvailableValues(ctx, services.AvailableValuesRequest{
				OwnerID:   ownerID,
				Requester: requester,
			})
			if err != nil {
				return err
			}
			if values == nil {
				values = []services.FilterValue{}
			}
			return writeJSON(cmd.OutOrStdout(), values)
		},
	}
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "User whose projects are scanned (required)")
	cmd.Flags().Int64Var(&requesterID, "requester", 0, "User the listing is rendered for")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
