package sqlite

import "github.com/lugondev/goatswap-cli/internal/storage/sqlstore"

var Dialect = sqlstore.Dialect{
	Name:       "sqlite",
	Migrations: migrations,
}

var migrations = []sqlstore.Migration{
	{
		Version:     1,
		Description: "Order book snapshots",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS order_book_snapshots (
				id TEXT PRIMARY KEY,
				cluster TEXT NOT NULL,
				collection TEXT NOT NULL,
				source TEXT NOT NULL,
				pair_count INTEGER NOT NULL,
				asks TEXT NOT NULL,
				bids TEXT NOT NULL,
				best_ask INTEGER,
				best_bid INTEGER,
				created_at INTEGER NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_snapshots_collection ON order_book_snapshots(collection, created_at DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON order_book_snapshots(created_at DESC)`,
		},
		Down: []string{`DROP TABLE IF EXISTS order_book_snapshots`},
	},
	{
		Version:     2,
		Description: "Transaction activity",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS activity (
				id TEXT PRIMARY KEY,
				kind TEXT NOT NULL,
				cluster TEXT NOT NULL,
				signature TEXT UNIQUE NOT NULL,
				pair TEXT NOT NULL,
				collection TEXT NOT NULL,
				wallet TEXT NOT NULL,
				price INTEGER NOT NULL,
				simulated BOOLEAN NOT NULL,
				created_at INTEGER NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_activity_wallet ON activity(wallet, created_at DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity(created_at DESC)`,
		},
		Down: []string{`DROP TABLE IF EXISTS activity`},
	},
}
