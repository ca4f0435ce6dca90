package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/poolwatch/poolwatch/internal/config"
	"github.com/poolwatch/poolwatch/internal/engine"
	"github.com/poolwatch/poolwatch/internal/logger"
	"github.com/poolwatch/poolwatch/internal/provider"
	"github.com/poolwatch/poolwatch/internal/state"
	"github.com/poolwatch/poolwatch/internal/web"
)

var fixturesFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolwatch",
		Short: "USD liquidity valuation for AMM pools",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
			}
			if err := config.LoadConfig(); err != nil {
				log.Fatal().Err(err).Msg("Failed to load configuration")
			}
			logger.Initialize(os.Getenv("LOG_LEVEL"))
		},
	}
	rootCmd.PersistentFlags().StringVar(&fixturesFlag, "fixtures", "", "path to a JSON fixture file (overrides POOLWATCH_FIXTURES and Postgres)")

	rootCmd.AddCommand(serveCmd(), valueCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the valuation HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			store, saver, cleanup := openStore()
			defer cleanup()

			eng, err := engine.New(store, store)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create valuation engine")
			}

			server := web.NewWebServer(config.WebPort, store, eng, saver)
			log.Info().Str("port", config.WebPort).Msg("Starting poolwatch API")
			if err := server.Start(); err != nil {
				log.Fatal().Err(err).Msg("Web server failed")
			}
		},
	}
}

func valueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "value <pool-id>",
		Short: "Compute the USD liquidity of a single pool and print it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, _, cleanup := openStore()
			defer cleanup()

			eng, err := engine.New(store, store)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create valuation engine")
			}

			ctx := context.Background()
			pool, err := store.GetPool(ctx, args[0])
			if err != nil {
				log.Fatal().Err(err).Str("poolID", args[0]).Msg("Failed to load pool")
			}

			liquidity, err := eng.GetLiquidity(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Str("poolID", pool.ID).Msg("Valuation failed")
			}
			fmt.Println(liquidity)
		},
	}
}

// poolStore is the full data access the commands need, satisfied by both the
// static fixture store and the Postgres store.
type poolStore interface {
	provider.PoolProvider
	provider.PoolLister
	provider.TokenProvider
	provider.PriceProvider
}

// openStore picks the static fixture store when a fixtures path is
// configured, and Postgres otherwise.
func openStore() (poolStore, web.SnapshotSaver, func()) {
	path := fixturesFlag
	if path == "" {
		path = config.FixturesPath
	}

	if path != "" {
		store, err := provider.LoadStaticStore(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to load fixture store")
		}
		return store, nil, func() {}
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database configuration")
	}
	if err := state.InitDB(dbCfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	if err := state.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}
	store, err := state.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create state store")
	}
	return store, store, state.CloseDB
}
