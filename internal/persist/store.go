package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/dikshacr123/research-agent/internal/plan"
)

const (
	plansDirName    = "plans"
	historyFileName = "conversation_history.json"
)

var keyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Store persists account plans, the conversation transcript, and export
// snapshots as JSON files under a data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a JSON file store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, plansDirName), 0755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrPersistence, err)
	}
	return &Store{dir: dir}, nil
}

// Key normalizes a company name into a document key.
func Key(company string) string {
	k := keyPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(company)), "_")
	return strings.Trim(k, "_")
}

// SaveDocument overwrites the stored plan for key. The write is atomic from
// the caller's viewpoint: on failure the prior document is left intact.
func (s *Store) SaveDocument(key string, p plan.AccountPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSONAtomic(s.planPath(key), p)
}

// LoadDocument reads the stored plan for key. Returns ErrNotFound when no
// document exists. Any fixed section absent on disk comes back as an empty
// string so the in-memory shape invariant holds.
func (s *Store) LoadDocument(key string) (plan.AccountPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.planPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return plan.AccountPlan{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return plan.AccountPlan{}, fmt.Errorf("%w: read document: %v", ErrPersistence, err)
	}

	var p plan.AccountPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return plan.AccountPlan{}, fmt.Errorf("%w: parse document %s: %v", ErrPersistence, key, err)
	}

	if p.Sections == nil {
		p.Sections = make(map[string]string, len(plan.SectionNames))
	}
	for _, name := range plan.SectionNames {
		if _, ok := p.Sections[name]; !ok {
			p.Sections[name] = ""
		}
	}
	return p, nil
}

// ListCompanies returns the keys of all saved plans, sorted.
func (s *Store) ListCompanies() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, plansDirName))
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", ErrPersistence, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

// AppendHistory appends one entry to the conversation transcript. Existing
// entries are never mutated or reordered.
func (s *Store) AppendHistory(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readHistory()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return writeJSONAtomic(filepath.Join(s.dir, historyFileName), entries)
}

// History returns the conversation transcript in arrival order.
func (s *Store) History() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHistory()
}

func (s *Store) readHistory() ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, historyFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read history: %v", ErrPersistence, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse history: %v", ErrPersistence, err)
	}
	return entries, nil
}

// WriteSnapshot writes an export snapshot to a timestamped file and returns
// its path.
func (s *Store) WriteSnapshot(snap Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := fmt.Sprintf("account_plan_%s.json", snap.Timestamp.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)
	if err := writeJSONAtomic(path, snap); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) planPath(key string) string {
	return filepath.Join(s.dir, plansDirName, key+".json")
}

// writeJSONAtomic writes v as indented JSON via a temp file and rename, so a
// failed write never leaves a partially visible document.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, filepath.Base(path), firstErr(werr, cerr))
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
