package ranking_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/plus3/colorfall/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2026-10-19 12:00 UTC, 21:00 in Japan.
var monday = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestNewEntryNormalisesName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada", "Ada"},
		{"  Ada  ", "Ada"},
		{"", ranking.DefaultName},
		{"   ", ranking.DefaultName},
		{"Alexander the Great", "Alexande"},
		{"ねこねこねこねこねこ", "ねこねこねこねこ"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.name), func(t *testing.T) {
			entry, err := ranking.NewEntry(10, ranking.Metadata{Name: tt.name}, monday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Name)
		})
	}
}

func TestNewEntryScoreRange(t *testing.T) {
	for _, score := range []int{0, 1, ranking.MaxScore} {
		_, err := ranking.NewEntry(score, ranking.Metadata{}, monday)
		assert.NoError(t, err, score)
	}
	for _, score := range []int{-1, ranking.MaxScore + 1} {
		_, err := ranking.NewEntry(score, ranking.Metadata{}, monday)
		assert.ErrorIs(t, err, ranking.ErrInvalidEntry, score)
	}
}

func TestWeekID(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{monday, "week-2026-10-18"},
		{time.Date(2026, time.October, 17, 14, 59, 0, 0, time.UTC), "week-2026-10-11"},
		{time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC), "week-2026-10-18"},
		{time.Date(2026, time.October, 24, 14, 59, 59, 0, time.UTC), "week-2026-10-18"},
	}

	for _, tt := range tests {
		t.Run(tt.at.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ranking.WeekID(tt.at))
		})
	}
}

func submitAll(t *testing.T, l *ranking.Leaderboard, scores ...int) {
	t.Helper()
	for i, score := range scores {
		meta := ranking.Metadata{PlayerID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("P%d", i), Season: "classic"}
		require.NoError(t, l.SubmitScore(context.Background(), score, meta))
	}
}

func scoresOf(entries []ranking.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestLeaderboardKeepsTopSix(t *testing.T) {
	l := ranking.NewLeaderboard(func() time.Time { return monday })

	submitAll(t, l, 30, 70, 10, 90, 50, 20, 80, 60)

	r := l.Rankings("classic")
	assert.Equal(t, []int{90, 80, 70, 60, 50, 30}, scoresOf(r.AllTime))
	assert.Equal(t, scoresOf(r.AllTime), scoresOf(r.Weekly))
	assert.Empty(t, l.Rankings("rush").AllTime)
}

func TestLeaderboardOneEntryPerPlayer(t *testing.T) {
	l := ranking.NewLeaderboard(func() time.Time { return monday })
	ctx := context.Background()
	meta := ranking.Metadata{PlayerID: "guest-1", Name: "Ada", Season: "classic"}

	require.NoError(t, l.SubmitScore(ctx, 50, meta))
	require.NoError(t, l.SubmitScore(ctx, 20, meta))

	r := l.Rankings("classic")
	require.Len(t, r.AllTime, 1)
	assert.Equal(t, 20, r.AllTime[0].Score)
}

func TestLeaderboardRejectsInvalidScores(t *testing.T) {
	l := ranking.NewLeaderboard(nil)

	err := l.SubmitScore(context.Background(), -5, ranking.Metadata{Season: "classic"})

	assert.ErrorIs(t, err, ranking.ErrInvalidEntry)
	assert.Empty(t, l.Rankings("classic").AllTime)
}

func TestLeaderboardQualifies(t *testing.T) {
	l := ranking.NewLeaderboard(func() time.Time { return monday })

	assert.False(t, l.Qualifies("classic", 0))
	assert.True(t, l.Qualifies("classic", 1))

	submitAll(t, l, 100, 90, 80, 70)
	assert.True(t, l.Qualifies("classic", 1), "fewer than five entries")

	submitAll(t, l, 100, 90, 80, 70, 60)
	assert.False(t, l.Qualifies("classic", 60))
	assert.True(t, l.Qualifies("classic", 61))
}

func TestLeaderboardWeeklyRollover(t *testing.T) {
	now := monday
	l := ranking.NewLeaderboard(func() time.Time { return now })
	submitAll(t, l, 100, 90, 80, 70, 60, 50)
	assert.False(t, l.Qualifies("classic", 10))

	now = now.AddDate(0, 0, 7)

	r := l.Rankings("classic")
	assert.Len(t, r.AllTime, 6)
	assert.Empty(t, r.Weekly)
	assert.True(t, l.Qualifies("classic", 10), "a new week has an empty weekly board")
}

func TestLeaderboardConcurrentSubmits(t *testing.T) {
	l := ranking.NewLeaderboard(nil)

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			meta := ranking.Metadata{PlayerID: fmt.Sprint(i), Season: "classic"}
			assert.NoError(t, l.SubmitScore(context.Background(), i, meta))
		}()
	}
	wg.Wait()

	assert.Equal(t, []int{63, 62, 61, 60, 59, 58}, scoresOf(l.Rankings("classic").AllTime))
}
