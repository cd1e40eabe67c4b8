package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board commands",
	}

	cmd.AddCommand(newBoardShowCmd())
	cmd.AddCommand(newBoardMovesCmd())

	return cmd
}

func newBoardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id> <player-id>",
		Short: "Show a player's board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Board

			path := fmt.Sprintf("/api/v1/matches/%s/players/%s/board", args[0], args[1])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBoardMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <match-id> <player-id>",
		Short: "List the positions open for the next placement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ValidPositions

			path := fmt.Sprintf("/api/v1/matches/%s/players/%s/valid-positions", args[0], args[1])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
