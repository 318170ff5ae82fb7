package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mindshift/internal/config"
	"mindshift/internal/repository"
	"mindshift/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const seedTimeout = 10 * time.Second

func newSeedCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored trait reference table with a JSON file",
		Long: `Validates the trait file first, then replaces the Mongo traits collection.
A malformed file is rejected before any connection is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			path := cfg.Scoring.TraitsPath

			table, err := scoring.LoadTraitTableFile(path)
			if err != nil {
				return fmt.Errorf("read traits %s: %w", path, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
			if err != nil {
				return fmt.Errorf("connect to MongoDB: %w", err)
			}
			defer client.Disconnect(context.Background())
			if err := client.Ping(ctx, nil); err != nil {
				return fmt.Errorf("ping MongoDB: %w", err)
			}

			db := client.Database(cfg.MongoDB)
			repository.EnsureIndexes(ctx, db)
			if err := repository.NewTraitRepo(db).ReplaceAll(ctx, table.Definitions()); err != nil {
				return fmt.Errorf("seed traits: %w", err)
			}

			slog.Info("seeded traits", "count", table.Len(), "db", cfg.MongoDB, "source", path)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d traits into %s\n", table.Len(), cfg.MongoDB)
			return nil
		},
	}

	cmd.Flags().String("traits", "", "Trait reference table (JSON array)")
	cmd.Flags().String("mongo-uri", "", "MongoDB connection string")
	cmd.Flags().String("mongo-db", "", "MongoDB database")
	cmd.PreRunE = bindFlags(v, map[string]string{
		"traits_path": "traits",
		"mongo_uri":   "mongo-uri",
		"mongo_db":    "mongo-db",
	})
	return cmd
}
