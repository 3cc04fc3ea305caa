// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package snapshot persists the in-memory catalog to a local sqlite file.

Persistence is write-behind and best-effort: the store's commit hook marks
the persister dirty, a background goroutine debounces bursts of mutations
into a single write, and a failed write only logs. The worst outcome of a
crash is losing the last few seconds of changes; the catalog itself never
blocks on disk.

The database holds exactly one row: the latest snapshot, JSON-encoded.
*/
package snapshot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ngocanhtran/verso/internal/storage/memory"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	taken_at DATETIME NOT NULL,
	payload  BLOB     NOT NULL
);`

const debounceInterval = 2 * time.Second

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot_open_failed: %w", err)
	}
	// The persister is the only writer; a single connection sidesteps
	// sqlite's multi-writer locking.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot_schema_failed: %w", err)
	}
	return db, nil
}

// Persister owns the write-behind loop between a memory store and the
// snapshot database.
type Persister struct {
	db     *sqlx.DB
	store  *memory.Store
	logger *slog.Logger

	dirty chan struct{}
	done  chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPersister wires the persister to the store and starts the write loop.
// Install MarkDirty as the store's commit hook to complete the circuit.
func NewPersister(db *sqlx.DB, store *memory.Store, logger *slog.Logger) *Persister {
	p := &Persister{
		db:     db,
		store:  store,
		logger: logger,
		dirty:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Load restores the latest snapshot into the store. A missing or corrupt
// snapshot starts the catalog empty; only the database being unreadable is
// an error.
func (p *Persister) Load() error {
	var row struct {
		TakenAt time.Time `db:"taken_at"`
		Payload []byte    `db:"payload"`
	}
	err := p.db.Get(&row, `SELECT taken_at, payload FROM snapshots WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			p.logger.Info("snapshot_empty_start")
			return nil
		}
		return fmt.Errorf("snapshot_load_failed: %w", err)
	}

	var snap memory.Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		p.logger.Warn("snapshot_corrupt_start_empty", slog.Any("error", err))
		return nil
	}

	p.store.Restore(snap)
	p.logger.Info("snapshot_restored",
		slog.Time("taken_at", row.TakenAt),
		slog.Int("accounts", len(snap.Accounts)),
		slog.Int("songs", len(snap.Songs)))
	return nil
}

// MarkDirty schedules a write. Safe to call from any goroutine; repeated
// calls before the next write coalesce.
func (p *Persister) MarkDirty() {
	select {
	case p.dirty <- struct{}{}:
	default:
	}
}

// Close flushes any pending write and stops the loop. The database handle
// stays open for the caller to close.
func (p *Persister) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	p.wg.Wait()
	return nil
}

func (p *Persister) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.dirty:
			// Let a burst of mutations settle before writing once.
			timer := time.NewTimer(debounceInterval)
			select {
			case <-timer.C:
			case <-p.done:
				timer.Stop()
			}
			p.write()
		case <-p.done:
			// Final flush covers anything marked dirty after the last write.
			select {
			case <-p.dirty:
				p.write()
			default:
			}
			return
		}
	}
}

func (p *Persister) write() {
	snap := p.store.TakeSnapshot()
	payload, err := json.Marshal(snap)
	if err != nil {
		p.logger.Error("snapshot_encode_failed", slog.Any("error", err))
		return
	}

	_, err = p.db.Exec(`
		INSERT INTO snapshots (id, taken_at, payload) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET taken_at = excluded.taken_at, payload = excluded.payload`,
		snap.SavedAt, payload)
	if err != nil {
		p.logger.Error("snapshot_write_failed", slog.Any("error", err))
		return
	}

	p.logger.Debug("snapshot_written", slog.Int("bytes", len(payload)))
}
