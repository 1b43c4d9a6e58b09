package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"
	"hotel/infras/postgres"
	"hotel/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

var ErrNotRelational = errors.New("migrations only apply to the postgres storage driver")

type step struct {
	run     func(mig *migrate.Migrate) error
	message string
}

var steps = map[string]step{
	"up":      {run: func(mig *migrate.Migrate) error { return mig.Up() }, message: "Database migrations completed successfully"},
	"step-up": {run: func(mig *migrate.Migrate) error { return mig.Steps(1) }, message: "Applied next database migration"},
	"down":    {run: func(mig *migrate.Migrate) error { return mig.Steps(-1) }, message: "Rolled back last database migration"},
	"drop":    {run: func(mig *migrate.Migrate) error { return mig.Down() }, message: "Rolled back all database migrations"},
}

func connectionString(cfg *config.Config) string {
	extra := url.Values{}
	if cfg.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	write := cfg.DB.Postgres.Write

	return postgres.DSN(write, postgres.DatabaseName(cfg, write), extra)
}

// Runner applies one migration action ("up", "step-up", "down" or "drop") to the write database.
func Runner(cfg *config.Config, action string) error {
	if cfg.Storage.Driver == constant.StorageDriverKV {
		return ErrNotRelational
	}

	current, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := migrate.New(migrationSource, connectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer func() {
		if sourceErr, dbErr := mig.Close(); sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	if err = current.run(mig); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("action", action).Msg("Database schema already up to date")

			return nil
		}

		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg(current.message)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Runner(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, "drop")
}

// AutoMigrate brings the schema up to date on startup when DB_POSTGRES_AUTO_MIGRATE is set.
func AutoMigrate(cfg *config.Config) {
	if !cfg.DB.Postgres.AutoMigrate || cfg.Storage.Driver == constant.StorageDriverKV {
		return
	}

	if err := Up(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations on startup")
	}
}
