package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/pkg/engines"
)

type extractedLink struct {
	Hostname string `json:"hostname"`
	Text     string `json:"text"`
}

var linksCmd = &cobra.Command{
	Use:   "links <url|file|->",
	Short: "Lists the result links found on a search results page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageURL, _ := cmd.Flags().GetString("page-url")
		asJSON, _ := cmd.Flags().GetBool("json")
		ctx := context.Background()

		client, err := newHTTPClient(cmd)
		if err != nil {
			return err
		}
		page, err := loadPage(ctx, args[0], pageURL, client)
		if err != nil {
			return err
		}

		engine, ok := engines.Identify(page.Hostname())
		if !ok {
			return fmt.Errorf("%w: %s", engines.ErrUnknownEngine, page.Hostname())
		}
		links, err := newExtractor(client).Extract(ctx, engine, page)
		if err != nil {
			return err
		}

		out := make([]extractedLink, 0, len(links))
		for _, l := range links {
			out = append(out, extractedLink{Hostname: l.Link().Hostname, Text: l.Text()})
		}
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		for _, l := range out {
			fmt.Println(l.Hostname)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().String("page-url", "", "URL the page was loaded from (required for files)")
	linksCmd.Flags().Bool("json", false, "Print hostnames and titles as JSON")
}
