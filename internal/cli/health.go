package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoStatusAddr = errors.New("--status-addr (or PIRANHAS_STATUS_ADDR) is required")

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the status server of a running client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.StatusAddr == "" {
				return errNoStatusAddr
			}
			var result HealthResult
			if err := NewClient(cfg.StatusAddr).Get("/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var showMoves bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the game a running client is playing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.StatusAddr == "" {
				return errNoStatusAddr
			}
			client := NewClient(cfg.StatusAddr)
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			var game GameStatus
			if err := client.Get("/api/v1/game", &game); err != nil {
				return err
			}
			out.Print(game)

			if showMoves {
				var moves MoveList
				if err := client.Get("/api/v1/game/moves", &moves); err != nil {
					return err
				}
				out.Print(moves)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMoves, "moves", false, "Also list the legal moves of the player to move")
	return cmd
}
