// Package history records training runs in a SQLite database
package history

import "database/sql"
import "encoding/json"
import "time"

import "github.com/google/uuid"
import _ "modernc.org/sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started TIMESTAMP NOT NULL,
	config TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS epochs (
	run TEXT NOT NULL REFERENCES runs(id),
	epoch INTEGER NOT NULL,
	train_loss REAL NOT NULL,
	valid_esr REAL NOT NULL,
	spectral REAL NOT NULL,
	learn_rate REAL NOT NULL,
	PRIMARY KEY (run, epoch)
);`

// Store keeps per-epoch training metrics across runs
type Store struct {
	db *sql.DB
}

// Epoch is one recorded epoch of one run
type Epoch struct {
	Epoch     int
	TrainLoss float64
	ValidESR  float64
	Spectral  float64
	LearnRate float64
}

// Open opens or creates the metrics database
func Open(name string) (*Store, error) {
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun registers a new training run and returns its id
func (s *Store) CreateRun(cfg interface{}) (string, error) {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.Exec("INSERT INTO runs (id, started, config) VALUES (?, ?, ?)",
		id, time.Now().UTC(), string(blob))
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecordEpoch stores the metrics of one finished epoch
func (s *Store) RecordEpoch(run string, e Epoch) error {
	_, err := s.db.Exec(
		"INSERT INTO epochs (run, epoch, train_loss, valid_esr, spectral, learn_rate) VALUES (?, ?, ?, ?, ?, ?)",
		run, e.Epoch, e.TrainLoss, e.ValidESR, e.Spectral, e.LearnRate)
	return err
}

// Epochs lists the recorded epochs of a run in order
func (s *Store) Epochs(run string) (o []Epoch, err error) {
	rows, err := s.db.Query(
		"SELECT epoch, train_loss, valid_esr, spectral, learn_rate FROM epochs WHERE run = ? ORDER BY epoch",
		run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e Epoch
		err = rows.Scan(&e.Epoch, &e.TrainLoss, &e.ValidESR, &e.Spectral, &e.LearnRate)
		if err != nil {
			return nil, err
		}
		o = append(o, e)
	}
	return o, rows.Err()
}

// Best returns the epoch with the lowest validation error of a run
func (s *Store) Best(run string) (Epoch, error) {
	var e Epoch
	err := s.db.QueryRow(
		"SELECT epoch, train_loss, valid_esr, spectral, learn_rate FROM epochs WHERE run = ? ORDER BY valid_esr LIMIT 1",
		run).Scan(&e.Epoch, &e.TrainLoss, &e.ValidESR, &e.Spectral, &e.LearnRate)
	return e, err
}
