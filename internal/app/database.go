package app

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"cursos/internal/content"
)

// NewDB opens a MySQL connection using sensible defaults.
func NewDB(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

// OpenSource picks the content source for cfg: MySQL when a DSN is set,
// otherwise files under cfg.ContentDir. The returned close func releases the
// database handle, if any.
func OpenSource(cfg Config) (content.Source, func() error, error) {
	if cfg.DSN == "" {
		return content.NewFileSource(cfg.ContentDir), func() error { return nil }, nil
	}

	db, err := NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return content.NewSQLSource(db), db.Close, nil
}
