package persist

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lucas/colonysim/internal/colony"
)

// Postgres manages PostgreSQL connections and the colony snapshot/event
// tables, the persist-layer analogue of the teacher's db.Postgres wrapping
// game state and events.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL connection pool. An empty connString
// yields a no-op Postgres, the same "run without a database" affordance the
// teacher gives cmd/server's -no-db flag.
func NewPostgres(connString string) (*Postgres, error) {
	if connString == "" {
		return &Postgres{}, nil
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("connected to PostgreSQL")
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) IsConnected() bool {
	return p != nil && p.pool != nil
}

// EnsureSchema creates the colony/event tables if they don't yet exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if !p.IsConnected() {
		return nil
	}
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS colony_snapshots (
			colony_id  UUID PRIMARY KEY,
			tick       INTEGER NOT NULL,
			state      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS colony_events (
			id         BIGSERIAL PRIMARY KEY,
			colony_id  UUID NOT NULL,
			tick       INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS colony_events_colony_tick_idx
			ON colony_events (colony_id, tick);
	`)
	return err
}

// SaveSnapshot upserts the latest full snapshot for a colony.
func (p *Postgres) SaveSnapshot(ctx context.Context, colonyID uuid.UUID, snap colony.ColonySnapshot) error {
	if !p.IsConnected() {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO colony_snapshots (colony_id, tick, state, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (colony_id) DO UPDATE
		SET tick = EXCLUDED.tick, state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
	`, colonyID, snap.Tick, data, time.Now())
	return err
}

// LoadSnapshot fetches the most recently saved snapshot for a colony.
func (p *Postgres) LoadSnapshot(ctx context.Context, colonyID uuid.UUID) (colony.ColonySnapshot, bool, error) {
	var snap colony.ColonySnapshot
	if !p.IsConnected() {
		return snap, false, nil
	}
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM colony_snapshots WHERE colony_id = $1`, colonyID).Scan(&raw)
	if err != nil {
		return snap, false, nil
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// SaveEvent appends a notification-derived event row for replay/audit.
func (p *Postgres) SaveEvent(ctx context.Context, colonyID uuid.UUID, tick int, n colony.Notification) error {
	if !p.IsConnected() {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO colony_events (colony_id, tick, event_type, payload)
		VALUES ($1, $2, $3, $4)
	`, colonyID, tick, string(n.Type), payload)
	return err
}

// EventsSince returns events for a colony at or after fromTick, for a
// client catching up after a disconnect.
func (p *Postgres) EventsSince(ctx context.Context, colonyID uuid.UUID, fromTick int) ([]colony.Notification, error) {
	if !p.IsConnected() {
		return nil, nil
	}
	rows, err := p.pool.Query(ctx, `
		SELECT tick, event_type, payload FROM colony_events
		WHERE colony_id = $1 AND tick >= $2 ORDER BY tick ASC
	`, colonyID, fromTick)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []colony.Notification
	for rows.Next() {
		var tick int
		var eventType string
		var payload []byte
		if err := rows.Scan(&tick, &eventType, &payload); err != nil {
			return nil, err
		}
		var n colony.Notification
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
