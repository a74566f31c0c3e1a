package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mindcoach/internal/security"
)

var hashAdminKeyCmd = &cobra.Command{
	Use:   "hash-admin-key",
	Short: "Read an admin key from stdin and print its ADMIN_KEY_HASH value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		key := strings.TrimSpace(line)
		if key == "" {
			if err != nil {
				return fmt.Errorf("read admin key: %w", err)
			}
			return fmt.Errorf("admin key must not be empty")
		}

		hash, err := security.HashAdminKey(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashAdminKeyCmd)
}
