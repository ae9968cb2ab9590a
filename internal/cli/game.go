package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameActiveCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameActionCmd("attack", "ATTACK", "Attack the covid monster"))
	cmd.AddCommand(newGameActionCmd("power-attack", "POWER_ATTACK", "Power attack the covid monster"))
	cmd.AddCommand(newGameActionCmd("heal", "HEAL", "Drink the healing potion"))
	cmd.AddCommand(newGameActionCmd("surrender", "SURRENDER", "Give up the current game"))
	cmd.AddCommand(newGameTickCmd())
	cmd.AddCommand(newGameLogsCmd())
	cmd.AddCommand(newGameHistoryCmd())
	cmd.AddCommand(newGameForfeitCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var timer int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{}
			if timer > 0 {
				req["timer"] = timer
			}
			var result Game

			if err := client.Post("/api/v1/games/start", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&timer, "timer", 0, "Game timer in seconds (10-300, default 60)")

	return cmd
}

func newGameActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the current active game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ActiveGame

			if err := client.Get("/api/v1/games/active", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show a game by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// newGameActionCmd builds one command per battle action; they only
// differ in the action string sent to the server.
func newGameActionCmd(use, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <game-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"action": action}
			var result ActionResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/action", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTickCmd() *cobra.Command {
	var decrementBy int

	cmd := &cobra.Command{
		Use:   "tick <game-id>",
		Short: "Advance the game timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{}
			if decrementBy > 0 {
				req["decrement_by"] = decrementBy
			}
			var result TimerResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/timer", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&decrementBy, "by", 0, "Seconds to decrement (1-60, default 1)")

	return cmd
}

func newGameLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <game-id>",
		Short: "Show a game's action log, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Logs

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/logs", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past games, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result History

			if err := client.Get("/api/v1/games/history", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameForfeitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forfeit",
		Short: "Forfeit all in-progress games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/games/forfeit", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Games forfeited")
			return nil
		},
	}
}
