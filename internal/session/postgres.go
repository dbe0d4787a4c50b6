package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgres keeps session state in a key-value table, for agent
// deployments that share a session across hosts.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (Storage, error) {
	if _, err := pool.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS hrsync_session (
      key   TEXT PRIMARY KEY,
      value BYTEA NOT NULL,
      updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )
  `); err != nil {
		return nil, err
	}
	return &kvStorage{kv: &postgresKV{pool: pool}}, nil
}

type postgresKV struct {
	pool *pgxpool.Pool
}

func (p *postgresKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `
    SELECT value FROM hrsync_session WHERE key = $1
  `, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *postgresKV) set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
    INSERT INTO hrsync_session (key, value)
    VALUES ($1, $2)
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
  `, key, value)
	return err
}

func (p *postgresKV) delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM hrsync_session WHERE key = $1`, key)
	return err
}

func (p *postgresKV) clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM hrsync_session`)
	return err
}
