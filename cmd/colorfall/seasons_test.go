package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/plus3/colorfall/engine"
	"github.com/plus3/colorfall/ranking"
	"github.com/plus3/colorfall/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSeasons(t *testing.T) {
	catalogue, err := season.Default(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	printSeasons(&buf, catalogue)

	out := buf.String()
	assert.Contains(t, out, "classic")
	assert.Contains(t, out, "rush")
	assert.Contains(t, out, "13x18")
	assert.Contains(t, out, "normal,support")
}

func TestPaletteColors(t *testing.T) {
	rules := engine.Classic()
	colors, err := paletteColors(rules)
	require.NoError(t, err)
	require.Len(t, colors, len(rules.Palette))
	assert.Equal(t, strings.ToLower(rules.Palette[0]), colors[0].Hex())

	rules.Palette = []string{"#12345", "nope"}
	_, err = paletteColors(rules)
	assert.ErrorContains(t, err, "palette colour 1")
}

func TestPrintRankings(t *testing.T) {
	board := ranking.NewLeaderboard(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) })
	require.NoError(t, board.SubmitScore(context.Background(), 321, ranking.Metadata{Name: "Ada", Season: "classic", Palette: "normal"}))

	var buf bytes.Buffer
	printRankings(&buf, board.Rankings("classic"))

	out := buf.String()
	assert.Contains(t, out, "All time")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "321")
}
