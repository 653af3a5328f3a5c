package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"postgres://user@localhost/flappy", true},
		{"postgresql://localhost/flappy?sslmode=disable", true},
		{"~/.flappy/replays.db", false},
		{"/tmp/postgres.db", false},
	}
	for _, tc := range tests {
		if got := IsPostgresDSN(tc.dsn); got != tc.want {
			t.Errorf("IsPostgresDSN(%q) = %v, expected %v", tc.dsn, got, tc.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: dialectPostgres}
	if got := pg.rebind("SELECT a FROM t WHERE b = ? AND c = ?"); got != "SELECT a FROM t WHERE b = $1 AND c = $2" {
		t.Errorf("postgres rebind = %q", got)
	}

	lite := &Store{dialect: dialectSQLite}
	if got := lite.rebind("WHERE b = ?"); got != "WHERE b = ?" {
		t.Errorf("sqlite rebind should leave the query alone, got %q", got)
	}
}

func TestTickCodec(t *testing.T) {
	ticks := []TickInput{
		{DT: 1.0 / 60, Jump: false},
		{DT: 0.1, Jump: true},
		{DT: 0, Jump: false},
	}

	data := EncodeTicks(ticks)
	if len(data) != len(ticks)*tickSize {
		t.Fatalf("encoded %d bytes, expected %d", len(data), len(ticks)*tickSize)
	}

	got, err := DecodeTicks(data)
	if err != nil {
		t.Fatalf("DecodeTicks() failed: %v", err)
	}
	for i := range ticks {
		if got[i] != ticks[i] {
			t.Errorf("tick %d = %+v, expected %+v", i, got[i], ticks[i])
		}
	}

	if _, err := DecodeTicks(data[:len(data)-1]); !errors.Is(err, ErrCorruptTicks) {
		t.Errorf("truncated stream should be corrupt, got %v", err)
	}
	bad := bytes.Clone(data)
	bad[8] = 7
	if _, err := DecodeTicks(bad); !errors.Is(err, ErrCorruptTicks) {
		t.Errorf("bad flag should be corrupt, got %v", err)
	}
}

func TestSaveLoadReplay(t *testing.T) {
	store := openTestStore(t)

	rec := &Recorder{}
	for i := 0; i < 120; i++ {
		rec.Record(1.0/60, i%20 == 0)
	}
	in := Replay{Seed: 42, Config: []byte("pipes:\n  gap: 180\n"), Ticks: rec.Ticks()}

	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	out, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if out.ID != id || out.Seed != 42 || string(out.Config) != string(in.Config) {
		t.Errorf("loaded replay header = %+v", out)
	}
	if len(out.Ticks) != 120 {
		t.Fatalf("loaded %d ticks, expected 120", len(out.Ticks))
	}
	for i := range in.Ticks {
		if out.Ticks[i] != in.Ticks[i] {
			t.Fatalf("tick %d = %+v, expected %+v", i, out.Ticks[i], in.Ticks[i])
		}
	}
}

func TestListReplays(t *testing.T) {
	store := openTestStore(t)

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := store.SaveReplay(Replay{Seed: int64(i), Config: []byte("{}"), Ticks: make([]TickInput, i+1)})
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	list, err := store.ListReplays(3)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 replays with limit, got %d", len(list))
	}

	// Newest first
	if list[0].ID != ids[4] || list[2].ID != ids[2] {
		t.Errorf("replays not in expected order: %+v", list)
	}
	if list[0].TickCount != 5 {
		t.Errorf("tick count = %d, expected 5", list[0].TickCount)
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(Replay{Seed: 1, Config: []byte("{}"), Ticks: make([]TickInput, 1)})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.LoadReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay should be not found, got %v", err)
	}
	if err := store.DeleteReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Record(0.5, true)
	rec.Record(0.5, false)

	ticks := rec.Ticks()
	if rec.Len() != 2 || len(ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", rec.Len())
	}
	if (Replay{Ticks: ticks}).Duration().Seconds() != 1 {
		t.Errorf("duration = %v, expected 1s", (Replay{Ticks: ticks}).Duration())
	}

	ticks[0].Jump = false
	if !rec.Ticks()[0].Jump {
		t.Error("Ticks() should return a copy")
	}

	rec.Reset()
	if rec.Len() != 0 {
		t.Error("Reset() should empty the recording")
	}
}
