package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/pkg/link"
	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/settings"
	"github.com/discontent/discontent/pkg/storage"
)

var voteCmd = &cobra.Command{
	Use:   "vote <good|bad> <url>",
	Short: "Votes on the hostname of a URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		value, err := scores.ParseVote(args[0])
		if err != nil {
			return err
		}
		l, err := link.FromURL(args[1])
		if err != nil {
			return err
		}

		var userID string
		err = withSettingsLock(cmd, func(db *storage.DB) error {
			userID, err = settings.GetUserID(ctx, db)
			return err
		})
		if err != nil {
			return err
		}

		apiClient, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		if err := apiClient.SubmitVote(ctx, l, value, userID); err != nil {
			return err
		}
		fmt.Printf("Voted %+d on %s\n", int(value), l.Hostname)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
}
