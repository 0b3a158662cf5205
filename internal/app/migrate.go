package app

import (
	"errors"
	"os"
	"strings"
	"time"

	errorsUtils "github.com/Egor213/RBACPanel/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
	migrationsPath  = "migrations"
)

// Migrate applies the alert history schema, retrying while Postgres starts up.
func Migrate(pgUrl string) error {
	if !strings.Contains(pgUrl, "sslmode=") {
		sep := "?"
		if strings.Contains(pgUrl, "?") {
			sep = "&"
		}
		pgUrl += sep + "sslmode=disable"
	}
	log.Info("Applying migrations")

	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		return errorsUtils.WrapPathErr(err)
	}

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		time.Sleep(defaultTimeout)
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		connAttempts--
	}

	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer mgrt.Close()

	err = mgrt.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return nil
	}
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	log.Info("Migration successful up")
	return nil
}
