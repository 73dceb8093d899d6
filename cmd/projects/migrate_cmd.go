package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations of every module",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, closeDB, err := loadApp(cmd.Context())
				if err != nil {
					return err
				}
				defer closeDB()
				return app.Migrations().Run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration, last module first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, closeDB, err := loadApp(cmd.Context())
				if err != nil {
					return err
				}
				defer closeDB()
				return app.Migrations().Rollback(cmd.Context())
			},
		},
	)
	return cmd
}
