package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/discontent/discontent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local scoring backend for development",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSettingsDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		return server.New(db, viper.GetBool("server.randomize")).Start(viper.GetString("server.listen"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default from server.listen)")
	serveCmd.Flags().Bool("random", false, "Answer with random scores instead of vote tallies")
	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("server.randomize", serveCmd.Flags().Lookup("random"))
}
