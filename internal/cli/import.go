package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/infra/file"
	"trivia-quiz-service/internal/infra/postgres"
	"trivia-quiz-service/internal/logger"
)

// NewImportCmd loads YAML pack files into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <pack.yaml>...",
		Short: "Validate question pack files and store them in Postgres",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openBun(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			importer := postgres.NewPackImporter(db)
			for _, path := range args {
				pack, err := file.LoadFile(path)
				if err != nil {
					return err
				}
				if err := importer.Import(cmd.Context(), pack); err != nil {
					return err
				}
				log.Info("pack imported", zap.String("pack_id", pack.ID), zap.Int("questions", len(pack.Questions)))
			}
			return nil
		},
	}
}
