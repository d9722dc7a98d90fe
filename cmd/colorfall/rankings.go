package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/plus3/colorfall/ranking"
)

// printRankings shows a season's all-time and weekly boards.
func printRankings(w io.Writer, r ranking.Rankings) {
	for _, list := range []struct {
		title   string
		entries []ranking.Entry
	}{
		{"All time", r.AllTime},
		{"This week", r.Weekly},
	} {
		fmt.Fprintf(w, "\n%s\n", list.title)
		if len(list.entries) == 0 {
			fmt.Fprintln(w, "  no scores yet")
			continue
		}

		data := make([][]string, 0, len(list.entries))
		for i, e := range list.entries {
			data = append(data, []string{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Score), e.Palette})
		}
		printTable(w, []string{"rank", "name", "score", "palette"}, data)
	}
}
