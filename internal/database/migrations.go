package database

// Tables lists every data table in foreign-key-safe deletion order (children
// before parents).
var Tables = []string{
	"order_lines",
	"orders",
	"products",
	"categories",
	"teas",
	"ingredients",
	"users",
}

// sqliteMigrations is an ordered list of SQL migration groups. Each entry is a
// slice of SQL statements that are executed together in a single transaction.
// The version number is the 1-based index into this slice.
var sqliteMigrations = [][]string{
	// Migration 1: catalog and accounts
	{
		`CREATE TABLE categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			allergen BOOLEAN NOT NULL DEFAULT FALSE,
			version INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			category_id INTEGER,
			version INTEGER NOT NULL DEFAULT 1,
			FOREIGN KEY (category_id) REFERENCES categories(id)
		)`,
		`CREATE INDEX idx_products_category ON products(category_id)`,

		`CREATE TABLE teas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			variety TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			brew_temperature INTEGER NOT NULL DEFAULT 0,
			steep_seconds INTEGER NOT NULL DEFAULT 0,
			version INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 1
		)`,
	},

	// Migration 2: ordering
	{
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			payment_mode TEXT NOT NULL,
			order_creation_time DATETIME NOT NULL,
			reservation DATETIME NOT NULL,
			comment TEXT,
			version INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE order_lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 50),
			product_id INTEGER NOT NULL,
			order_id INTEGER,
			version INTEGER NOT NULL DEFAULT 1,
			FOREIGN KEY (product_id) REFERENCES products(id),
			FOREIGN KEY (order_id) REFERENCES orders(id)
		)`,
		`CREATE INDEX idx_order_lines_product ON order_lines(product_id)`,
		`CREATE INDEX idx_order_lines_order ON order_lines(order_id)`,
	},
}

// postgresMigrations mirrors sqliteMigrations version for version.
var postgresMigrations = [][]string{
	{
		`CREATE TABLE categories (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE ingredients (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			allergen BOOLEAN NOT NULL DEFAULT FALSE,
			version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE products (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			category_id BIGINT REFERENCES categories(id),
			version BIGINT NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_products_category ON products(category_id)`,

		`CREATE TABLE teas (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			variety TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			brew_temperature INTEGER NOT NULL DEFAULT 0,
			steep_seconds INTEGER NOT NULL DEFAULT 0,
			version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE users (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			version BIGINT NOT NULL DEFAULT 1
		)`,
	},

	{
		`CREATE TABLE orders (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			payment_mode TEXT NOT NULL,
			order_creation_time TIMESTAMPTZ NOT NULL,
			reservation TIMESTAMPTZ NOT NULL,
			comment TEXT,
			version BIGINT NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE order_lines (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 50),
			product_id BIGINT NOT NULL REFERENCES products(id),
			order_id BIGINT REFERENCES orders(id),
			version BIGINT NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX idx_order_lines_product ON order_lines(product_id)`,
		`CREATE INDEX idx_order_lines_order ON order_lines(order_id)`,
	},
}

func migrationsFor(d Dialect) [][]string {
	if d == Postgres {
		return postgresMigrations
	}
	return sqliteMigrations
}
