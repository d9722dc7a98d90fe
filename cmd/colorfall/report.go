package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/plus3/ooftn/ecs"
	"github.com/rodaine/table"
)

type Report struct {
	// Configuration
	Season      string
	Games       int
	Parallel    int
	MaxDuration time.Duration
	Step        time.Duration
	Seed        uint64

	// Results
	TotalTime      time.Duration
	TotalTicks     int64
	GameOvers      int
	Score          IntStats
	Survival       Stats
	TickTime       Stats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

type IntStats struct {
	Min, Max, Avg int
}

// Finalize fills the aggregate fields from per-game results.
func (r *Report) Finalize(results []gameResult) {
	for i, res := range results {
		r.TotalTicks += res.Ticks
		if res.GameOver {
			r.GameOvers++
		}

		if i == 0 {
			r.Score = IntStats{Min: res.Score, Max: res.Score}
		}
		r.Score.Min = min(r.Score.Min, res.Score)
		r.Score.Max = max(r.Score.Max, res.Score)
		r.Score.Avg += res.Score

		r.Survival.Samples = append(r.Survival.Samples, res.Elapsed)
		if res.Ticks > 0 {
			r.TickTime.Samples = append(r.TickTime.Samples, res.WallTime/time.Duration(res.Ticks))
		}
	}
	if len(results) > 0 {
		r.Score.Avg /= len(results)
	}
	r.Survival.Finalize()
	r.TickTime.Finalize()
	r.Systems = mergeSystemStats(results)
}

// mergeSystemStats sums the scheduler timings of every game, keeping the
// registration order of the systems.
func mergeSystemStats(results []gameResult) []ecs.SystemStats {
	var merged []ecs.SystemStats
	for _, res := range results {
		if res.Stats == nil {
			continue
		}
		for i, s := range res.Stats.Systems {
			if i >= len(merged) {
				merged = append(merged, ecs.SystemStats{Name: s.Name, MinDuration: s.MinDuration})
			}
			m := &merged[i]
			m.ExecutionCount += s.ExecutionCount
			m.TotalDuration += s.TotalDuration
			m.MinDuration = min(m.MinDuration, s.MinDuration)
			m.MaxDuration = max(m.MaxDuration, s.MaxDuration)
			m.LastDuration = s.LastDuration
		}
	}
	for i := range merged {
		if merged[i].ExecutionCount > 0 {
			merged[i].AvgDuration = merged[i].TotalDuration / time.Duration(merged[i].ExecutionCount)
		}
	}
	return merged
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Colorfall Simulation Report

## Configuration
- **Season:** {{.Season}}
- **Games:** {{.Games}} ({{.Parallel}} at a time)
- **Seed:** {{.Seed}}
- **Tick:** {{.Step}}, stop after {{.MaxDuration}} of play

## Results
- **Total Ticks:** {{comma .TotalTicks}}
- **Total Run Time:** {{.TotalTime}}
- **Games Lost:** {{.GameOvers}} of {{.Games}}
- **Score:** avg {{.Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Survival (simulated):**
  - **Avg:** {{.Survival.Avg}}
  - **Min:** {{.Survival.Min}}
  - **Max:** {{.Survival.Max}}
- **Tick Time (wall, per-game average):**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage
- Heap Alloc:     {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end) -> delta: {{bdelta .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bdelta .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end) -> delta: {{bdelta .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bytes": humanize.Bytes,
		"comma": humanize.Comma,
		"bdelta": func(a, b uint64) string {
			if a >= b {
				return "+" + humanize.Bytes(a-b)
			}
			return "-" + humanize.Bytes(b-a)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// printGames lists every game, first column highlighted.
func printGames(w io.Writer, results []gameResult) {
	tbl := table.New("GAME", "SEED", "SCORE", "LOCKS", "CLEARS", "SURVIVED", "TICKS", "ENDED")
	tbl.WithWriter(w)
	columnFmt := color.New(color.FgBlue, color.Bold).SprintfFunc()
	tbl.WithFirstColumnFormatter(columnFmt)

	for _, res := range results {
		ended := "time limit"
		if res.GameOver {
			ended = "game over"
		}
		tbl.AddRow(res.Game, res.Seed, humanize.Comma(int64(res.Score)), res.Locks, res.Clears,
			res.Elapsed.Truncate(time.Second), humanize.Comma(res.Ticks), ended)
	}
	tbl.Print()
}

// printSystems renders per-system scheduler timings summed over all games.
func printSystems(w io.Writer, systems []ecs.SystemStats) {
	data := make([][]string, 0, len(systems))
	for _, s := range systems {
		data = append(data, []string{
			s.Name,
			humanize.Comma(s.ExecutionCount),
			s.AvgDuration.String(),
			s.MinDuration.String(),
			s.MaxDuration.String(),
			s.TotalDuration.String(),
		})
	}
	printTable(w, []string{"system", "runs", "avg", "min", "max", "total"}, data)
}

func printTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)

	table.SetHeader(header)
	table.SetHeaderLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(true)

	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("  ")
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("     ")

	table.AppendBulk(data)

	table.Render()
}
