package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cinema-showtimes/internal/config"
)

// Open connects to MySQL and verifies the connection.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// the catalog is read a handful of times per process
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// Schema creates the catalog tables if they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS movies (
	id          VARCHAR(64)  NOT NULL PRIMARY KEY,
	position    INT          NOT NULL DEFAULT 0,
	title       VARCHAR(255) NOT NULL,
	genre       VARCHAR(64)  NOT NULL DEFAULT '',
	genre_label VARCHAR(64)  NOT NULL DEFAULT '',
	rating      VARCHAR(16)  NOT NULL DEFAULT '',
	runtime_min INT          NULL,
	image       VARCHAR(512) NOT NULL DEFAULT '',
	alt         VARCHAR(512) NOT NULL DEFAULT '',
	description TEXT         NULL,
	screen      INT          NULL
);
CREATE TABLE IF NOT EXISTS movie_showtimes (
	movie_id  VARCHAR(64) NOT NULL,
	day       CHAR(3)     NOT NULL,
	position  INT         NOT NULL DEFAULT 0,
	show_time CHAR(5)     NOT NULL,
	PRIMARY KEY (movie_id, day, position),
	CONSTRAINT fk_showtimes_movie FOREIGN KEY (movie_id) REFERENCES movies(id) ON DELETE CASCADE
);`

// Migrate applies Schema one statement at a time, since the driver does
// not allow multi-statement Exec by default.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(Schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func splitStatements(s string) []string {
	var out []string
	for _, stmt := range strings.Split(s, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
