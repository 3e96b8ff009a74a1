package main

import (
	"os"

	"github.com/motorlane/kiosk/cli"
	"github.com/motorlane/kiosk/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"kiosk",
		"Showroom kiosk for the dealership floor",
	)

	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewSessionsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
