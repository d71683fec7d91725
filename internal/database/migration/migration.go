package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Entities are stored document-style: embedded lists (variants, order items,
// image keys) live in JSONB columns and cross-entity references are plain
// identifiers without foreign keys.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_sellers",
		SQL: `CREATE TABLE IF NOT EXISTS sellers (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id      UUID        NOT NULL,
  parent_id    UUID,
  shop_name    TEXT        NOT NULL,
  phone        TEXT        NOT NULL DEFAULT '',
  address      TEXT        NOT NULL DEFAULT '',
  gstin        TEXT        NOT NULL DEFAULT '',
  verification TEXT        NOT NULL DEFAULT 'pending',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id          UUID           PRIMARY KEY DEFAULT uuid_generate_v4(),
  seller_id   UUID           NOT NULL,
  name        TEXT           NOT NULL,
  description TEXT           NOT NULL DEFAULT '',
  category    TEXT           NOT NULL,
  price       NUMERIC(12,2)  NOT NULL CHECK (price >= 0),
  stock       INT            NOT NULL CHECK (stock >= 0),
  variants    JSONB          NOT NULL DEFAULT '[]',
  image_keys  JSONB          NOT NULL DEFAULT '[]',
  active      BOOLEAN        NOT NULL DEFAULT true,
  created_at  TIMESTAMPTZ    NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ    NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_category_commissions",
		SQL: `CREATE TABLE IF NOT EXISTS category_commissions (
  id         UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  category   TEXT          NOT NULL UNIQUE,
  percent    NUMERIC(5,2)  NOT NULL CHECK (percent >= 0 AND percent <= 100),
  created_at TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id               UUID           PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id          UUID           NOT NULL,
  items            JSONB          NOT NULL,
  total_amount     NUMERIC(12,2)  NOT NULL,
  total_commission NUMERIC(12,2)  NOT NULL,
  total_payout     NUMERIC(12,2)  NOT NULL,
  status           TEXT           NOT NULL DEFAULT 'created',
  shipping_address TEXT           NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ    NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ    NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_payments",
		SQL: `CREATE TABLE IF NOT EXISTS payments (
  id                 UUID           PRIMARY KEY DEFAULT uuid_generate_v4(),
  order_id           UUID           NOT NULL,
  gateway_order_id   TEXT           NOT NULL,
  gateway_payment_id TEXT           NOT NULL DEFAULT '',
  amount             NUMERIC(12,2)  NOT NULL,
  status             TEXT           NOT NULL DEFAULT 'pending',
  created_at         TIMESTAMPTZ    NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ    NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id    UUID        NOT NULL,
  title      TEXT        NOT NULL,
  body       TEXT        NOT NULL DEFAULT '',
  read       BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_banners",
		SQL: `CREATE TABLE IF NOT EXISTS banners (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title      TEXT        NOT NULL,
  image_key  TEXT        NOT NULL,
  link_url   TEXT        NOT NULL DEFAULT '',
  active     BOOLEAN     NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_products_seller",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_seller ON products (seller_id);`,
	},
	{
		Name: "create_index_products_category",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);`,
	},
	{
		Name: "create_index_orders_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id);`,
	},
	{
		Name: "create_index_orders_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at);`,
	},
	{
		Name: "create_index_notifications_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id);`,
	},
	{
		Name: "create_index_sellers_parent",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sellers_parent ON sellers (parent_id);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs all steps if it
// doesn't. Steps are idempotent, so a partial earlier run is safe to repeat.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.users') IS NOT NULL").Scan(&exists); err != nil {
		return fmt.Errorf("migration check: %w", err)
	}
	if exists {
		log.Info("database schema up to date")
		return nil
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return fmt.Errorf("migration step %s: %w", step.Name, err)
		}
		log.Info("migration step applied", zap.String("step", step.Name))
	}

	log.Info("database migrated", zap.Duration("took", time.Since(start)))
	return nil
}
