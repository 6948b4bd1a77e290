package cmd

import (
	"fmt"

	"github.com/Cable-s/PianoGame/match"
	"github.com/Cable-s/PianoGame/musicxml"
	"github.com/Cable-s/PianoGame/perflog"
	"github.com/spf13/cobra"
)

var (
	analyzeEarly float64
	analyzeLate  float64
)

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeEarly, "early", 0, "early tolerance in seconds")
	analyzeCmd.Flags().Float64Var(&analyzeLate, "late", 0, "late tolerance in seconds")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <score.musicxml> <performance.mid>",
	Short: "Scores a recorded performance against a score",
	Long:  `Scores a recorded performance against a score`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(args[0], args[1])
	},
}

func analyze(scorePath, perfPath string) error {
	score, err := musicxml.ParseFile(scorePath)
	if err != nil {
		return err
	}
	events, err := perflog.Read(perfPath)
	if err != nil {
		return err
	}

	tol := match.DefaultTolerance()
	if analyzeEarly > 0 {
		tol.Early = analyzeEarly
	}
	if analyzeLate > 0 {
		tol.Late = analyzeLate
	}

	notes := score.PlayedNotes(true, true)
	results := match.Run(events, notes, tol)
	summary := match.Score(results, len(notes))

	fmt.Printf("%q — %v expected notes, %v events\n", score.Title, summary.Expected, len(events))
	fmt.Printf("perfect: %v  good: %v  early: %v  late: %v  missed: %v  extra: %v\n",
		summary.Perfect, summary.Good, summary.Early, summary.Late, summary.Missed, summary.Extra)
	fmt.Printf("score: %v\n", summary.Total)
	fmt.Printf("accuracy: %.1f%%  grade: %v\n", summary.Accuracy*100, summary.Grade)
	return nil
}
