package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/discontent/discontent/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `     _ _                     _             _
  __| (_)___  ___ ___  _ __ | |_ ___ _ __ | |_
 / _' | / __|/ __/ _ \| '_ \| __/ _ \ '_ \| __|
| (_| | \__ \ (_| (_) | | | | ||  __/ | | | |_
 \__,_|_|___/\___\___/|_| |_|\__\___|_| |_|\__|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "discontent",
	Short: "Annotates search result links with community trust scores.",
	Long: LOGO + `discontent marks Google, Bing and DuckDuckGo result links as good, bad or
controversial according to community votes, and lets you vote on the sites you visit.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.discontent.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "", "settings database (default is $XDG_DATA_HOME/discontent/discontent.sqlite)")
}

func setDefaults() {
	viper.SetDefault("api.endpoint", "https://api.discontent.example/v1")
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.retries", 2)
	viper.SetDefault("resolver.concurrency", 8)
	viper.SetDefault("settings.path", "")
	viper.SetDefault("server.listen", "127.0.0.1:9000")
	viper.SetDefault("server.randomize", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".discontent")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("discontent")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := filepath.Join(home, ".discontent.yaml")
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := utils.SetLogLevel(levelString); err != nil {
		utils.Log.Fatal(err)
	}
}
