package cmd

import (
	"bufio"
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/internal/background"
	"github.com/discontent/discontent/internal/content"
	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/messaging"
	"github.com/discontent/discontent/pkg/storage"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <url|file|->",
	Short: "Prints a search results page with score icons in front of every result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageURL, _ := cmd.Flags().GetString("page-url")
		ctx := context.Background()

		client, err := newHTTPClient(cmd)
		if err != nil {
			return err
		}
		apiClient, err := newAPIClient(cmd)
		if err != nil {
			return err
		}
		page, err := loadPage(ctx, args[0], pageURL, client)
		if err != nil {
			return err
		}

		rt := messaging.NewRuntime()
		defer rt.Close()
		rt.Listen(background.NewHandler(apiClient))

		err = withSettingsLock(cmd, func(db *storage.DB) error {
			pipeline := &content.Pipeline{
				Extractor: newExtractor(client),
				Bridge:    rt,
				Settings:  db,
			}
			tok, _ := content.NewGuard().Acquire()
			res, err := pipeline.Run(ctx, tok, page)
			if err != nil {
				return err
			}
			if res != nil {
				utils.Log.Infof("Annotated %d of %d %s results", res.Annotated, len(res.Links), res.Engine)
			}
			return nil
		})
		if err != nil {
			// The page is still printed, just without icons.
			utils.Log.Errorf("Could not annotate page: %v", err)
		}

		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		return page.Render(w)
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().String("page-url", "", "URL the page was loaded from (required for files)")
}
