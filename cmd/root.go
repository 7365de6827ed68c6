package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the nylas-go application
var rootCmd = &cobra.Command{
	Use:   "nylas",
	Short: "Nylas email and calendar API client",
	Long: `nylas is a client for the Nylas email and calendar API.

It can run as:
  - A CLI for the hosted-auth flow (auth url, auth exchange)
  - A demo web server exposing the auth flow and message endpoints (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "nylas version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
