package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dikshacr123/research-agent/internal/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestKeyNormalizesCompanyNames(t *testing.T) {
	cases := map[string]string{
		"Tesla":          "tesla",
		"  Tesla, Inc. ": "tesla_inc",
		"ACME CO":        "acme_co",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveAndLoadDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := plan.NewEmpty()
	p.Sections["pain_points"] = "Budget constraints"
	p.CreatedAt = time.Now().UTC().Truncate(time.Second)

	if err := s.SaveDocument("tesla", p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadDocument("tesla")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Sections["pain_points"] != "Budget constraints" {
		t.Fatalf("unexpected section: %q", got.Sections["pain_points"])
	}
	for _, name := range plan.SectionNames {
		if _, ok := got.Sections[name]; !ok {
			t.Fatalf("loaded plan missing section %q", name)
		}
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("created_at changed: %v != %v", got.CreatedAt, p.CreatedAt)
	}
}

func TestLoadDocumentNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LoadDocument("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveDocumentOverwrites(t *testing.T) {
	s := newTestStore(t)

	p := plan.NewEmpty()
	p.Sections["next_steps"] = "first"
	if err := s.SaveDocument("tesla", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.Sections["next_steps"] = "second"
	if err := s.SaveDocument("tesla", p); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := s.LoadDocument("tesla")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Sections["next_steps"] != "second" {
		t.Fatalf("expected overwrite, got %q", got.Sections["next_steps"])
	}
}

func TestListCompanies(t *testing.T) {
	s := newTestStore(t)

	for _, key := range []string{"tesla", "acme"} {
		if err := s.SaveDocument(key, plan.NewEmpty()); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}

	keys, err := s.ListCompanies()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "acme" || keys[1] != "tesla" {
		t.Fatalf("unexpected keys: %#v", keys)
	}
}

func TestAppendHistoryPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	for i, content := range []string{"first", "second", "third"} {
		e := Entry{
			Role:      "user",
			Content:   content,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := s.AppendHistory(e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := s.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Content != "first" || entries[2].Content != "third" {
		t.Fatalf("order not preserved: %#v", entries)
	}
}

func TestWriteSnapshotShape(t *testing.T) {
	s := newTestStore(t)

	p := plan.NewEmpty()
	p.Sections["pain_points"] = "Budget constraints"

	path, err := s.WriteSnapshot(NewSnapshot(p))
	if err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if filepath.Dir(path) == "" {
		t.Fatalf("empty snapshot path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap struct {
		ID   string `json:"id"`
		Data struct {
			Plan map[string]string `json:"plan"`
		} `json:"data"`
		Timestamp time.Time `json:"timestamp"`
		Type      string    `json:"type"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	if snap.Type != SnapshotType {
		t.Fatalf("unexpected type: %q", snap.Type)
	}
	if snap.ID == "" {
		t.Fatalf("snapshot id unset")
	}
	if snap.Data.Plan["pain_points"] != "Budget constraints" {
		t.Fatalf("unexpected exported section: %q", snap.Data.Plan["pain_points"])
	}
	if snap.Timestamp.IsZero() {
		t.Fatalf("snapshot timestamp unset")
	}
}

func TestSnapshotDataIsStableAcrossExports(t *testing.T) {
	p := plan.NewEmpty()
	p.Sections["pain_points"] = "Budget constraints"

	a := NewSnapshot(p)
	b := NewSnapshot(p)

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("snapshot ids should be distinct and non-empty: %q %q", a.ID, b.ID)
	}

	da, _ := json.Marshal(a.Data)
	db, _ := json.Marshal(b.Data)
	if string(da) != string(db) {
		t.Fatalf("snapshot data differs across exports:\n%s\n%s", da, db)
	}
}
