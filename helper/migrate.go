package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"tourism/config"
	"tourism/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action")

type migration struct {
	run     func(*migrate.Migrate) error
	message string
}

var migrations = map[string]migration{
	"up":      {run: func(m *migrate.Migrate) error { return m.Up() }, message: "Database migrations completed successfully"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, message: "Applied the next migration"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, message: "Rolled back the latest migration"},
	"drop":    {run: func(m *migrate.Migrate) error { return m.Down() }, message: "Database migrations rolled back successfully"},
}

// Migrations always run against the write endpoint.
func open(cfg *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.DSN(cfg, cfg.DB.Postgres.Write, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err = step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		log.Warn().Err(verErr).Msg("could not read migration version")
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(step.message)

	return nil
}

// Version reports the applied schema version. A database with no migrations
// reports version 0.
func Version(cfg *config.Config) (uint, bool, error) {
	mig, err := open(cfg)
	if err != nil {
		return 0, false, err
	}

	defer mig.Close()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("error reading migration version: %w", err)
	}

	return version, dirty, nil
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
