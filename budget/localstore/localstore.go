// Package localstore keeps locally synthesized budget records in a sqlite
// database so the offline demo state survives restarts. Records are stored
// as JSON payloads; the table is a cache of client-only state, not a mirror
// of the backend schema.
package localstore

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jrsteele09/go-auth-client/budget"
	"github.com/pkg/errors"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

const fileName = "local_budgets.db"

var _ budget.LocalStore = (*Store)(nil)

// Store wraps a sqlite connection holding the local records.
type Store struct {
	conn *sql.DB
}

// New opens (or creates) the database under dataFolder and runs migrations.
// The folder is created when it does not exist yet.
func New(dataFolder string) (*Store, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[localstore.New] MkdirAll")
	}

	conn, err := sql.Open("sqlite", filepath.Join(dataFolder, fileName))
	if err != nil {
		return nil, errors.Wrap(err, "[localstore.New] Open")
	}
	if err := conn.Ping(); err != nil {
		return nil, errors.Wrap(err, "[localstore.New] Ping")
	}

	store := &Store{conn: conn}
	if err := store.migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS local_budgets (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return errors.Wrap(err, "[localstore.migrate]")
	}
	return nil
}

func (s *Store) SaveLocal(b budget.Budget) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return errors.Wrap(err, "[Store.SaveLocal] Marshal")
	}
	_, err = s.conn.Exec(
		`INSERT INTO local_budgets (id, payload) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		string(b.ID), string(payload),
	)
	if err != nil {
		return errors.Wrap(err, "[Store.SaveLocal] Exec")
	}
	return nil
}

func (s *Store) DeleteLocal(id budget.ID) error {
	_, err := s.conn.Exec("DELETE FROM local_budgets WHERE id = ?", string(id))
	if err != nil {
		return errors.Wrap(err, "[Store.DeleteLocal] Exec")
	}
	return nil
}

// LoadLocal returns every persisted local record in insertion order.
func (s *Store) LoadLocal() ([]budget.Budget, error) {
	rows, err := s.conn.Query("SELECT payload FROM local_budgets ORDER BY created_at, id")
	if err != nil {
		return nil, errors.Wrap(err, "[Store.LoadLocal] Query")
	}
	defer rows.Close() //nolint:errcheck

	var budgets []budget.Budget
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "[Store.LoadLocal] Scan")
		}
		b := budget.Budget{}
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			return nil, errors.Wrap(err, "[Store.LoadLocal] Unmarshal")
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[Store.LoadLocal] rows")
	}
	return budgets, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
