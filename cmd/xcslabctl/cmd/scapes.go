package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scapesCmd = &cobra.Command{
	Use:   "scapes",
	Short: "List available environments",
	RunE:  runScapes,
}

func runScapes(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	names, err := client.Scapes(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
