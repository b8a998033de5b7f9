package config

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Trigger handlers run concurrently per event; keep headroom for the match workers.
	db.SetMaxOpenConns(25 + cfg.MatchWorkers)
	db.SetMaxIdleConns(5)

	return db, nil
}
