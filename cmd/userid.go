package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/pkg/settings"
	"github.com/discontent/discontent/pkg/storage"
)

var useridCmd = &cobra.Command{
	Use:   "userid [uuid]",
	Short: "Prints the user id sent with votes, or replaces it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return withSettingsLock(cmd, func(db *storage.DB) error {
			if len(args) == 1 {
				return settings.SetUserID(ctx, db, args[0])
			}
			id, err := settings.GetUserID(ctx, db)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(useridCmd)
}
