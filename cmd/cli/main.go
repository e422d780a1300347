package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mexicano-cli",
	Short: "A CLI to run a Mexicano tournament on the mexicano server",
	Long: `A command-line interface for making requests to the various endpoints
of the mexicano server: register players, pair rounds, enter scores and
follow the leaderboard.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Ask the server to log this request at debug level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
