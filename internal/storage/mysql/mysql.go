package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/lugondev/goatswap-cli/internal/config"
	"github.com/lugondev/goatswap-cli/internal/storage"
	"github.com/lugondev/goatswap-cli/internal/storage/sqlstore"
)

func init() {
	storage.RegisterFactory(storage.DatabaseTypeMySQL, func(ctx context.Context, cfg *config.DatabaseConfig) (storage.Repository, error) {
		return NewMySQLRepository(ctx, &cfg.MySQL)
	})
}

// DSN builds the driver connection string for cfg.
func DSN(cfg *config.MySQLConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Database
	dsn.ParseTime = true

	if cfg.TLS != "" && cfg.TLS != "false" && cfg.TLS != "disable" {
		dsn.TLSConfig = cfg.TLS
	}
	return dsn.FormatDSN()
}

func NewMySQLRepository(ctx context.Context, cfg *config.MySQLConfig) (*sqlstore.Store, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlstore.New(db, Dialect), nil
}
