// Package ranking is the score-submission side of a finished game: the
// Submitter port the hosts call on game over, and Leaderboard, an in-process
// implementation keeping per-season all-time and weekly top lists.
package ranking

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/plus3/colorfall/ctxlog"
)

const (
	// MaxNameLength is the number of runes kept from a player name.
	MaxNameLength = 8
	// MaxScore is the largest score accepted.
	MaxScore = 999999
	// DefaultName replaces blank player names.
	DefaultName = "Anonymous"
	// BoardSize is the number of entries a board keeps.
	BoardSize = 6

	// Scores qualify outright while a board holds fewer entries than this.
	openSlots = 5
)

// ErrInvalidEntry is returned for scores outside [0, MaxScore].
var ErrInvalidEntry = errors.New("invalid ranking entry")

var weekZone = time.FixedZone("JST", 9*60*60)

// Metadata identifies who played what.
type Metadata struct {
	PlayerID string
	Name     string
	Season   string
	Palette  string
}

// Entry is one normalised leaderboard row.
type Entry struct {
	PlayerID string
	Name     string
	Score    int
	Season   string
	Palette  string
	Week     string
	At       time.Time
}

// Submitter hands a final score to whatever keeps rankings.
type Submitter interface {
	SubmitScore(ctx context.Context, score int, meta Metadata) error
}

// NewEntry validates score and normalises the player name.
func NewEntry(score int, meta Metadata, at time.Time) (Entry, error) {
	if score < 0 || score > MaxScore {
		return Entry{}, fmt.Errorf("%w: score %d outside [0,%d]", ErrInvalidEntry, score, MaxScore)
	}
	return Entry{
		PlayerID: meta.PlayerID,
		Name:     normalizeName(meta.Name),
		Score:    score,
		Season:   meta.Season,
		Palette:  meta.Palette,
		Week:     WeekID(at),
		At:       at,
	}, nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}

// WeekID labels the ranking week containing t. Weeks start on Sunday at
// midnight Japan time.
func WeekID(t time.Time) string {
	local := t.In(weekZone)
	start := local.AddDate(0, 0, -int(local.Weekday()))
	return "week-" + start.Format(time.DateOnly)
}

// board is a top list with at most one entry per player.
type board struct {
	entries []Entry
}

func (b *board) insert(e Entry) {
	if e.PlayerID != "" {
		b.entries = slices.DeleteFunc(b.entries, func(old Entry) bool {
			return old.PlayerID == e.PlayerID
		})
	}
	b.entries = append(b.entries, e)
	slices.SortStableFunc(b.entries, func(x, y Entry) int {
		return cmp.Compare(y.Score, x.Score)
	})
	if len(b.entries) > BoardSize {
		b.entries = b.entries[:BoardSize]
	}
}

func (b *board) qualifies(score int) bool {
	if b == nil || len(b.entries) < openSlots {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}

func (b *board) top() []Entry {
	if b == nil {
		return nil
	}
	return slices.Clone(b.entries)
}

// Rankings are the two lists shown for a season.
type Rankings struct {
	AllTime []Entry
	Weekly  []Entry
}

// Leaderboard is a Submitter that keeps rankings in memory. It is safe for
// concurrent use.
type Leaderboard struct {
	mu      sync.Mutex
	now     func() time.Time
	allTime map[string]*board
	weekly  map[string]*board
}

// NewLeaderboard creates an empty leaderboard. now defaults to time.Now.
func NewLeaderboard(now func() time.Time) *Leaderboard {
	if now == nil {
		now = time.Now
	}
	return &Leaderboard{
		now:     now,
		allTime: make(map[string]*board),
		weekly:  make(map[string]*board),
	}
}

func weeklyKey(season, week string) string {
	return season + "/" + week
}

// SubmitScore records score on the season's all-time and current weekly
// boards.
func (l *Leaderboard) SubmitScore(ctx context.Context, score int, meta Metadata) error {
	entry, err := NewEntry(score, meta, l.now())
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, boards := range []struct {
		m   map[string]*board
		key string
	}{
		{l.allTime, entry.Season},
		{l.weekly, weeklyKey(entry.Season, entry.Week)},
	} {
		b, ok := boards.m[boards.key]
		if !ok {
			b = &board{}
			boards.m[boards.key] = b
		}
		b.insert(entry)
	}

	ctxlog.FromContext(ctx).Debug("score submitted",
		"season", entry.Season,
		"name", entry.Name,
		"score", entry.Score,
		"week", entry.Week)
	return nil
}

// Rankings returns copies of the season's all-time and current weekly lists.
func (l *Leaderboard) Rankings(season string) Rankings {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Rankings{
		AllTime: l.allTime[season].top(),
		Weekly:  l.weekly[weeklyKey(season, WeekID(l.now()))].top(),
	}
}

// Qualifies reports whether score would earn a place on either of the
// season's boards. Zero never qualifies.
func (l *Leaderboard) Qualifies(season string, score int) bool {
	if score <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.allTime[season].qualifies(score) ||
		l.weekly[weeklyKey(season, WeekID(l.now()))].qualifies(score)
}
