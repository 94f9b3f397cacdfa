package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dikshacr123/research-agent/internal/research"
)

// ResearchCache keeps research records in SQLite so a crashed session can
// pick its findings back up without re-querying the backend.
type ResearchCache struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewResearchCache opens (creating if needed) the cache database at path.
func NewResearchCache(path string) (*ResearchCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	c := &ResearchCache{db: db}

	if err := c.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return c, nil
}

// init creates the necessary tables if they don't exist
func (c *ResearchCache) init() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS research_records (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			company_key  TEXT NOT NULL,
			company      TEXT NOT NULL,
			findings     TEXT NOT NULL,
			retrieved_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_research_company ON research_records(company_key);
		CREATE INDEX IF NOT EXISTS idx_research_retrieved ON research_records(retrieved_at);
	`)
	return err
}

// Put stores a research record.
func (c *ResearchCache) Put(rec research.Findings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	retrieved := rec.RetrievedAt
	if retrieved.IsZero() {
		retrieved = time.Now()
	}

	_, err := c.db.Exec(`
		INSERT INTO research_records (company_key, company, findings, retrieved_at)
		VALUES (?, ?, ?, ?)
	`, Key(rec.Company), rec.Company, rec.Content, retrieved.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: cache research: %v", ErrPersistence, err)
	}
	return nil
}

// Latest returns the most recent research record for a company, or nil when
// none has been cached.
func (c *ResearchCache) Latest(company string) (*research.Findings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row := c.db.QueryRow(`
		SELECT company, findings, retrieved_at
		FROM research_records
		WHERE company_key = ?
		ORDER BY id DESC
		LIMIT 1
	`, Key(company))

	var rec research.Findings
	var retrieved string
	if err := row.Scan(&rec.Company, &rec.Content, &retrieved); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load research: %v", ErrPersistence, err)
	}

	if t, err := time.Parse(time.RFC3339, retrieved); err == nil {
		rec.RetrievedAt = t
	}
	return &rec, nil
}

// Companies returns all companies with cached research, most recent first.
func (c *ResearchCache) Companies() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query(`
		SELECT company, MAX(id) AS latest
		FROM research_records
		GROUP BY company_key
		ORDER BY latest DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list research: %v", ErrPersistence, err)
	}
	defer rows.Close()

	var companies []string
	for rows.Next() {
		var company string
		var latest int64
		if err := rows.Scan(&company, &latest); err != nil {
			return nil, fmt.Errorf("%w: scan research row: %v", ErrPersistence, err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// Close closes the underlying database.
func (c *ResearchCache) Close() error {
	return c.db.Close()
}
