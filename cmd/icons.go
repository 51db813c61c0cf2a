package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/pkg/settings"
	"github.com/discontent/discontent/pkg/storage"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Shows and changes the icons used for each score",
}

var iconsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Prints the configured icons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return withSettingsLock(cmd, func(db *storage.DB) error {
			icons, err := settings.GetIcons(ctx, db)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", settings.KeyGood, icons.Good)
			fmt.Printf("%s\t%s\n", settings.KeyControversial, icons.Controversial)
			fmt.Printf("%s\t%s\n", settings.KeyBad, icons.Bad)
			return nil
		})
	},
}

var iconsSetCmd = &cobra.Command{
	Use:   "set <good|controversial|bad> <icon>",
	Short: "Sets the icon of one score",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettingsLock(cmd, func(db *storage.DB) error {
			return settings.SetIcon(context.Background(), db, args[0], args[1])
		})
	},
}

var iconsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restores the default icons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettingsLock(cmd, func(db *storage.DB) error {
			return settings.ResetIcons(context.Background(), db)
		})
	},
}

func init() {
	rootCmd.AddCommand(iconsCmd)
	iconsCmd.AddCommand(iconsGetCmd)
	iconsCmd.AddCommand(iconsSetCmd)
	iconsCmd.AddCommand(iconsResetCmd)
}
