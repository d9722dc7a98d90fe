package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/plus3/colorfall/engine"
	"github.com/plus3/colorfall/season"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List the available seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogue, err := loadCatalogue(cmd.Context())
		if err != nil {
			return err
		}
		printSeasons(cmd.OutOrStdout(), catalogue)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seasonsCmd)
}

func printSeasons(w io.Writer, catalogue *season.Catalogue) {
	tbl := table.New("NAME", "TITLE", "ALIASES", "FIELD", "CEILING", "FALL", "PALETTES")
	tbl.WithWriter(w)
	columnFmt := color.New(color.FgBlue, color.Bold).SprintfFunc()
	tbl.WithFirstColumnFormatter(columnFmt)

	for _, s := range catalogue.Seasons() {
		rules, err := s.Ruleset("")
		if err != nil {
			continue
		}

		fall := fmt.Sprintf("%s from %s every %s, min %s", rules.Fall.Curve, rules.Fall.Base, rules.Fall.Period, rules.Fall.Min)
		if rules.Fall.Curve == engine.CurveLinear {
			fall = fmt.Sprintf("-%s from %s every %s, min %s", rules.Fall.Step, rules.Fall.Base, rules.Fall.Period, rules.Fall.Min)
		}

		tbl.AddRow(
			s.Name,
			s.Title,
			strings.Join(s.Aliases, ","),
			fmt.Sprintf("%dx%d", rules.Width, rules.Height),
			fmt.Sprintf("+1 row per %s, max %d", rules.Ceiling.Step, rules.Ceiling.Cap),
			fall,
			strings.Join(s.PaletteNames(), ","),
		)
	}
	tbl.Print()
}
