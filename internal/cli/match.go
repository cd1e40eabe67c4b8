package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchShowCmd())
	cmd.AddCommand(newMatchPlayersCmd())
	cmd.AddCommand(newMatchStandingsCmd())
	cmd.AddCommand(newMatchPlaceCmd())
	cmd.AddCommand(newMatchCombosCmd())
	cmd.AddCommand(newMatchSettleCmd())
	cmd.AddCommand(newMatchExportCmd())
	cmd.AddCommand(newMatchImportCmd())

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>...",
		Short: "Create a match for 2-4 named players",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"player_names": args}
			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show match state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <match-id>",
		Short: "List the match's players in seat order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s/players", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <match-id>",
		Short: "Show the score table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Standing

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s/standings", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <match-id> <player-id> <row> <col>",
		Short: "Place the current central tile on your board",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}
			col, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			req := map[string]int{"row": row, "col": col}
			var result PlaceResult

			path := fmt.Sprintf("/api/v1/matches/%s/players/%s/place", args[0], args[1])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCombosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combos <match-id> <player-id>",
		Short: "List settleable combinations on your board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Combination

			path := fmt.Sprintf("/api/v1/matches/%s/players/%s/combinations", args[0], args[1])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchSettleCmd() *cobra.Command {
	var positionsArg, flipsArg string

	cmd := &cobra.Command{
		Use:   "settle <match-id> <player-id>",
		Short: "Score a combination and flip tiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := parsePositions(positionsArg)
			if err != nil {
				return fmt.Errorf("invalid --positions: %w", err)
			}
			flips, err := parsePositions(flipsArg)
			if err != nil {
				return fmt.Errorf("invalid --flips: %w", err)
			}

			req := map[string]any{"positions": positions, "flips": flips}
			var result SettleResult

			path := fmt.Sprintf("/api/v1/matches/%s/players/%s/settle", args[0], args[1])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&positionsArg, "positions", "", "Combination members as row,col pairs separated by ';' (e.g. '0,0;0,1;0,2')")
	cmd.Flags().StringVar(&flipsArg, "flips", "", "Tiles to flip, one or two row,col pairs separated by ';'")
	_ = cmd.MarkFlagRequired("positions")
	_ = cmd.MarkFlagRequired("flips")

	return cmd
}

func newMatchExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <match-id> [file]",
		Short: "Export the match as a save file (stdout by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetRaw(fmt.Sprintf("/api/v1/matches/%s/savegame", args[0]))
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := os.WriteFile(args[1], data, 0644); err != nil {
					return err
				}
				NewOutput(cfg.Output).PrintMessage("Saved to " + args[1])
				return nil
			}

			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func newMatchImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Restore a match from a save file (stdin by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}

			var result Match
			if err := client.PostRaw("/api/v1/matches/savegame", data, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// parsePositions parses row,col pairs separated by ';'
func parsePositions(s string) ([]Position, error) {
	var positions []Position
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected row,col but got %q", pair)
		}
		row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", pair, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid col in %q: %w", pair, err)
		}
		positions = append(positions, Position{Row: row, Col: col})
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions given")
	}
	return positions, nil
}
