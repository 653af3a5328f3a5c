package storage

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrCorruptTicks is returned when a tick stream cannot be decoded.
var ErrCorruptTicks = errors.New("storage: corrupt tick stream")

// tickSize is the encoded size of one tick: dt as float64 bits plus a flag byte.
const tickSize = 9

// TickInput is everything the simulation consumed in one tick.
type TickInput struct {
	DT   float64
	Jump bool
}

// Replay is a recorded session. Together with the config document and the
// seed, the tick stream reproduces the session exactly.
type Replay struct {
	ID        int64
	Seed      int64
	Config    []byte // YAML
	Ticks     []TickInput
	CreatedAt time.Time
}

// Duration returns the simulated time covered by the replay.
func (r Replay) Duration() time.Duration {
	return time.Duration(sumDT(r.Ticks) * float64(time.Second))
}

// ReplaySummary is a replay listing entry without the tick stream.
type ReplaySummary struct {
	ID        int64
	Seed      int64
	TickCount int
	Duration  time.Duration
	CreatedAt time.Time
}

func sumDT(ticks []TickInput) float64 {
	var total float64
	for _, t := range ticks {
		total += t.DT
	}
	return total
}

// EncodeTicks packs a tick stream into bytes.
func EncodeTicks(ticks []TickInput) []byte {
	buf := make([]byte, len(ticks)*tickSize)
	for i, t := range ticks {
		off := i * tickSize
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(t.DT))
		if t.Jump {
			buf[off+8] = 1
		}
	}
	return buf
}

// DecodeTicks unpacks a stream produced by EncodeTicks.
func DecodeTicks(data []byte) ([]TickInput, error) {
	if len(data)%tickSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of ticks", ErrCorruptTicks, len(data))
	}

	ticks := make([]TickInput, len(data)/tickSize)
	for i := range ticks {
		off := i * tickSize
		flag := data[off+8]
		if flag > 1 {
			return nil, fmt.Errorf("%w: bad jump flag %d at tick %d", ErrCorruptTicks, flag, i)
		}
		ticks[i] = TickInput{
			DT:   math.Float64frombits(binary.LittleEndian.Uint64(data[off:])),
			Jump: flag == 1,
		}
	}
	return ticks, nil
}

// SaveReplay stores a replay and returns its ID.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	query := s.rebind(`INSERT INTO replays (seed, config, tick_count, duration_secs, ticks)
		 VALUES (?, ?, ?, ?, ?)`)
	args := []any{r.Seed, string(r.Config), len(r.Ticks), sumDT(r.Ticks), EncodeTicks(r.Ticks)}

	if s.dialect == dialectPostgres {
		var id int64
		if err := s.db.QueryRow(query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay: %w", err)
		}
		return id, nil
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(s.rebind(
		`SELECT id, seed, tick_count, duration_secs, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var secs float64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Seed, &e.TickCount, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(secs * float64(time.Second))
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadReplay retrieves a replay with its tick stream.
func (s *Store) LoadReplay(id int64) (Replay, error) {
	var r Replay
	var config string
	var ticks []byte
	var createdAt any

	err := s.db.QueryRow(s.rebind(
		`SELECT id, seed, config, ticks, created_at
		 FROM replays
		 WHERE id = ?`),
		id,
	).Scan(&r.ID, &r.Seed, &config, &ticks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Ticks, err = DecodeTicks(ticks)
	if err != nil {
		return Replay{}, fmt.Errorf("storage: replay %d: %w", id, err)
	}
	r.Config = []byte(config)
	r.CreatedAt = parseTime(createdAt)

	return r, nil
}

// DeleteReplay removes a replay.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec(s.rebind("DELETE FROM replays WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: replay %d", ErrNotFound, id)
	}
	return nil
}

// parseTime handles drivers that return timestamps as time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Recorder accumulates the tick stream of a running session.
type Recorder struct {
	ticks []TickInput
}

// Record appends one tick.
func (r *Recorder) Record(dt float64, jump bool) {
	r.ticks = append(r.ticks, TickInput{DT: dt, Jump: jump})
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.ticks)
}

// Ticks returns a copy of the recorded stream.
func (r *Recorder) Ticks() []TickInput {
	out := make([]TickInput, len(r.ticks))
	copy(out, r.ticks)
	return out
}

// Reset discards the recording.
func (r *Recorder) Reset() {
	r.ticks = r.ticks[:0]
}
