package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configured store",
	RunE:  runInit,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all persisted runs and populations",
	RunE:  runReset,
}

func runInit(cmd *cobra.Command, _ []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	if err := client.Init(cmd.Context()); err != nil {
		return err
	}
	store := cfg.Store
	if flagStore != "" {
		store = flagStore
	}
	if store == "" {
		store = "memory"
	}
	fmt.Printf("initialized store=%s\n", store)
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	if err := client.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("store reset")
	return nil
}
