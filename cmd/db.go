package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"text/tabwriter"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/discontent/discontent/pkg/scores"
	"github.com/discontent/discontent/pkg/storage"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Interact with the discontent database",
}

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := settingsDBPath(cmd)
		if err != nil {
			return err
		}

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", dbPath)
		}

		// Check if sqlite3 is in PATH
		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the db shell")
		}

		// Print schema first
		fmt.Println("--> Database schema:")
		schemaCmd := exec.Command(sqlitePath, dbPath, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: couldn't retrieve schema: %v\n", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, dbPath)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the votes in the database.",
	Long:  "Prints statistics about the votes recorded by the local scoring backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		byDomain, _ := cmd.Flags().GetBool("by-domain")
		asMarkdown, _ := cmd.Flags().GetBool("markdown")

		db, err := openSettingsDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		stats, err := db.GetStats(ctx)
		if err != nil {
			return err
		}
		if stats.Hostnames == 0 {
			fmt.Println("No votes in the database to generate stats.")
			return nil
		}

		var domains []storage.DomainTally
		if byDomain || asMarkdown {
			tallies, err := db.ListTallies(ctx)
			if err != nil {
				return err
			}
			domains = storage.GroupByDomain(tallies)
		}

		switch {
		case asMarkdown:
			return writeStatsMarkdown(os.Stdout, stats, domains)
		case byDomain:
			printDomainTallies(os.Stdout, domains)
		default:
			printStats(os.Stdout, stats)
		}
		return nil
	},
}

func printStats(out io.Writer, stats storage.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "HOSTNAMES\tVOTES\tUSERS\t")
	fmt.Fprintf(w, "%d\t%d\t%d\t\n", stats.Hostnames, stats.Votes, stats.Users)
	fmt.Fprintln(w, " \t \t \t")
	fmt.Fprintln(w, "SCORE\tHOSTNAMES\t \t")
	for _, s := range scores.All {
		fmt.Fprintf(w, "%s\t%d\t \t\n", s, stats.ByScore[s])
	}
	w.Flush()
}

func printDomainTallies(out io.Writer, tallies []storage.DomainTally) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DOMAIN\tHOSTNAMES\tVOTES\tSUM\tSCORE\t")

	var totalHostnames, totalVotes int
	for _, t := range tallies {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t\n", t.Domain, t.Hostnames, t.CountOfVotes, t.SumOfVotes, scores.FromTally(t.Tally))
		totalHostnames += t.Hostnames
		totalVotes += t.CountOfVotes
	}

	fmt.Fprintln(w, " \t \t \t \t \t")
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t \t \t\n", totalHostnames, totalVotes)

	w.Flush()
}

// writeStatsMarkdown renders the summary and the per-domain table as a
// markdown document, e.g. for pasting into an issue.
func writeStatsMarkdown(out io.Writer, stats storage.Stats, domains []storage.DomainTally) error {
	md := markdown.NewMarkdown(out)
	md.H1("discontent vote statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Hostnames", "Votes", "Users"},
		Rows: [][]string{
			{strconv.Itoa(stats.Hostnames), strconv.Itoa(stats.Votes), strconv.Itoa(stats.Users)},
		},
	})
	md.PlainText("")

	md.H2("Scores")
	md.PlainText("")
	scoreRows := make([][]string, 0, len(scores.All))
	for _, s := range scores.All {
		scoreRows = append(scoreRows, []string{string(s), strconv.Itoa(stats.ByScore[s])})
	}
	md.Table(markdown.TableSet{Header: []string{"Score", "Hostnames"}, Rows: scoreRows})
	md.PlainText("")

	if len(domains) > 0 {
		md.H2("Domains")
		md.PlainText("")
		rows := make([][]string, 0, len(domains))
		for _, d := range domains {
			rows = append(rows, []string{
				"`" + d.Domain + "`",
				strconv.Itoa(d.Hostnames),
				strconv.Itoa(d.CountOfVotes),
				strconv.Itoa(d.SumOfVotes),
				string(scores.FromTally(d.Tally)),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Domain", "Hostnames", "Votes", "Sum", "Score"},
			Rows:   rows,
		})
	}

	return md.Build()
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("by-domain", false, "Group hostnames by registrable domain")
	statsCmd.Flags().Bool("markdown", false, "Print the statistics as a markdown document")
}
