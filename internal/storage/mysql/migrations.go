package mysql

import "github.com/lugondev/goatswap-cli/internal/storage/sqlstore"

var Dialect = sqlstore.Dialect{
	Name:       "mysql",
	Migrations: migrations,
}

var migrations = []sqlstore.Migration{
	{
		Version:     1,
		Description: "Order book snapshots",
		Up: []string{`
		CREATE TABLE IF NOT EXISTS order_book_snapshots (
			id VARCHAR(36) PRIMARY KEY,
			cluster VARCHAR(16) NOT NULL,
			collection VARCHAR(64) NOT NULL,
			source VARCHAR(16) NOT NULL,
			pair_count INT NOT NULL,
			asks LONGTEXT NOT NULL,
			bids LONGTEXT NOT NULL,
			best_ask BIGINT,
			best_bid BIGINT,
			created_at BIGINT NOT NULL,
			INDEX idx_snapshots_collection (collection, created_at DESC),
			INDEX idx_snapshots_created_at (created_at DESC)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		},
		Down: []string{`DROP TABLE IF EXISTS order_book_snapshots`},
	},
	{
		Version:     2,
		Description: "Transaction activity",
		Up: []string{`
		CREATE TABLE IF NOT EXISTS activity (
			id VARCHAR(36) PRIMARY KEY,
			kind VARCHAR(16) NOT NULL,
			cluster VARCHAR(16) NOT NULL,
			signature VARCHAR(100) UNIQUE NOT NULL,
			pair VARCHAR(64) NOT NULL,
			collection VARCHAR(64) NOT NULL,
			wallet VARCHAR(64) NOT NULL,
			price BIGINT NOT NULL,
			simulated BOOLEAN NOT NULL,
			created_at BIGINT NOT NULL,
			INDEX idx_activity_wallet (wallet, created_at DESC),
			INDEX idx_activity_created_at (created_at DESC)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		},
		Down: []string{`DROP TABLE IF EXISTS activity`},
	},
}
