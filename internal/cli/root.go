package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is the client version reported by --version and /api/v1/health
const Version = "1.2.0"

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "piranhas-client",
		Short:   "Bot client for the Piranhas game server",
		Version: Version,
		Long: `piranhas-client connects to a Piranhas game server over TCP, joins a game
(or a prepared reservation) and plays it to the end with a bot strategy.

Run without a subcommand to play one game. With --status-addr the client
also serves its view of the game over HTTP while it plays.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				cfg.Seeded = true
			}
			for _, n := range numericEnv {
				if cmd.Flags().Changed(n.flag) {
					cfg.flagSet(n.flag)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return play(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.Host, "host", "H", cfg.Host, "Game server host (env: PIRANHAS_HOST)")
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Game server port (env: PIRANHAS_PORT)")
	flags.StringVarP(&cfg.Reservation, "reservation", "r", cfg.Reservation, "Reservation code of a prepared game (env: PIRANHAS_RESERVATION)")
	flags.StringVarP(&cfg.Strategy, "strategy", "s", cfg.Strategy, "Bot strategy: random, swarm (env: PIRANHAS_STRATEGY)")
	flags.DurationVar(&cfg.MoveTimeout, "move-timeout", cfg.MoveTimeout, "Time budget per move (env: PIRANHAS_MOVE_TIMEOUT)")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for reproducible bot choices (env: PIRANHAS_SEED)")
	flags.StringVar(&cfg.StatusAddr, "status-addr", cfg.StatusAddr, "Serve game status on host:port (env: PIRANHAS_STATUS_ADDR)")
	flags.StringVar(&cfg.Cache, "cache", cfg.Cache, "Evaluation cache: memory, redis (env: PIRANHAS_CACHE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis cache (env: PIRANHAS_REDIS_URL)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env: PIRANHAS_LOG_LEVEL)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json, text (env: PIRANHAS_LOG_FORMAT)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the game.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
