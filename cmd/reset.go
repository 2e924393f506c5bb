package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/socra/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a learner profile and start fresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		id := learnerID(cmd)
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Printf("Delete profile %q? Mastery records and history are kept. [y/N] ", id)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Profiles().Delete(context.Background(), id); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		fmt.Printf("Profile %q deleted.\n", id)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
}
