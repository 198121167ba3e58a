package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const gamesPath = "/dots/api/games"

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGameBoardCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game and take the first seat",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"playerType": strings.ToUpper(color)}
			var result Seat

			if err := client.Post(cmd.Context(), gamesPath, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "RED", "Color to play: RED or BLUE")

	return cmd
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Take the second seat of a waiting game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result Seat

			if err := client.Put(cmd.Context(), gamePath(gameID), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	var (
		playerID int64
		row      int
		col      int
	)

	cmd := &cobra.Command{
		Use:   "move <h|v> <game-id>",
		Short: "Draw a horizontal (h) or vertical (v) line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var endpoint string
			switch strings.ToLower(args[0]) {
			case "h", "horizontal":
				endpoint = "hmove"
			case "v", "vertical":
				endpoint = "vmove"
			default:
				return fmt.Errorf("orientation must be h or v, got %q", args[0])
			}

			gameID, err := parseGameID(args[1])
			if err != nil {
				return err
			}

			req := map[string]int64{"playerId": playerID, "row": int64(row), "col": int64(col)}
			var result MoveResult

			if err := client.Post(cmd.Context(), gamePath(gameID)+"/"+endpoint, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&playerID, "player", 0, "Your player ID")
	cmd.Flags().IntVar(&row, "row", 0, "Line row")
	cmd.Flags().IntVar(&col, "col", 0, "Line column")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("col")

	return cmd
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state <game-id>",
		Short: "Show scores and whose turn it is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result GameState

			if err := client.Get(cmd.Context(), gamePath(gameID)+"/state", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <game-id>",
		Short: "Show the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result Board

			if err := client.Get(cmd.Context(), gamePath(gameID)+"/board", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", s)
	}
	return id, nil
}

func gamePath(gameID int64) string {
	return fmt.Sprintf("%s/%d", gamesPath, gameID)
}
