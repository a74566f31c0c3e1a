package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mindcoach/internal/repository"
	"mindcoach/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect or remove a single user's record",
}

var userShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Print a user's stored state",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <user-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user's stored state",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

func init() {
	userCmd.AddCommand(userShowCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func openStateService(cmd *cobra.Command) (*service.StateService, func(), error) {
	cfg, db, err := openDatabase(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	states, err := service.NewStateService(repository.NewStateRepository(db), 1, cfg.StateCacheTTL, nil, nil, cfg.Location)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return states, func() { db.Close() }, nil
}

func runUserShow(cmd *cobra.Command, args []string) error {
	states, closeDB, err := openStateService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	exp, err := states.Export(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	states, closeDB, err := openStateService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	deleted, err := states.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("user %s not found", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
	return nil
}
