package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notesweb",
		Short: "Web front end for published notes",
		Long: `notesweb serves the notes web app: the landing and auth pages, the
dashboard, the /api surface used by the browser, and every user's public
notes on their own subdomain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		serveCmd(),
		classifyCmd(),
		versionCmd(),
	)
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
