// cmd/outreach-cli/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverAddr string

func main() {
	root := &cobra.Command{
		Use:   "outreach-cli",
		Short: "Operator console for the conference outreach pipeline",
	}
	root.PersistentFlags().StringVar(&serverAddr, "server", "http://localhost:8080", "outreach server base URL")

	root.AddCommand(
		newRunCommand(),
		newJobCommand(),
		newStatusCommand(),
		newReviewCommand(),
		newSendCommand(),
		newReportCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
