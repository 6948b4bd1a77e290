package cmd

import (
	"fmt"

	"github.com/Cable-s/PianoGame/musicxml"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <score.musicxml>",
	Short: "Parses a score and dumps the timed note list",
	Long:  `Parses a score and dumps the timed note list`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return parse(args[0])
	},
}

func parse(path string) error {
	score, err := musicxml.ParseFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("title: %v\n", score.Title)
	fmt.Printf("composer: %v\n", score.Composer)
	fmt.Printf("tempo: %v bpm, divisions: %v\n", score.Tempo, score.Divisions)

	for _, n := range score.FlatNotes() {
		name := "rest"
		if !n.Rest {
			name = n.Pitch.String()
		}
		fmt.Printf("m%03d staff=%v beat=%7.3f t=%7.3fs %-5v %v\n",
			n.MeasureNumber, n.Staff, n.Beat, n.StartSeconds, name, n.Duration.Type)
	}
	return nil
}
