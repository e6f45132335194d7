package config

import "errors"

type Config struct {
	DSN         string
	AutoMigrate bool
	MaxConns    int
	IdleConns   int
	BatchSize   int
}

// Enabled reports whether a snapshot database is configured at all.
func (c Config) Enabled() bool {
	return c.DSN != ""
}

func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.MaxConns < 1 {
		return errors.New("DB_MAX_CONNS is invalid")
	}
	if c.IdleConns < 1 {
		return errors.New("DB_IDLE_CONNS is invalid")
	}
	if c.BatchSize < 1 {
		return errors.New("DB_BATCH_SIZE is invalid")
	}
	// no check AutoMigrate
	return nil
}
