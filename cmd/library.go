package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Cable-s/PianoGame/constants"
	"github.com/Cable-s/PianoGame/db"
	"github.com/Cable-s/PianoGame/model"
	"github.com/Cable-s/PianoGame/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(libraryCmd)
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Lists scores under SCORE_PATH",
	Long:  `Lists scores under SCORE_PATH, with metadata when available`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return library()
	},
}

func library() error {
	paths := util.GatherScorePaths(constants.GetScoreDir())
	if len(paths) == 0 {
		fmt.Printf("no scores under %v\n", constants.GetScoreDir())
		return nil
	}

	metadatas := fetchMetadatas(paths)
	for _, path := range paths {
		name := filepath.Base(path)
		if m, ok := metadatas[name]; ok {
			fmt.Printf("%v — %q by %v (difficulty %v)\n", name, m.Title, m.Composer, m.Difficulty)
		} else {
			fmt.Println(name)
		}
	}
	return nil
}

// fetchMetadatas looks up metadata in batches of 10; the listing still
// works when the metadata store is unreachable.
func fetchMetadatas(paths []string) map[string]model.ScoreMetadata {
	res := make(map[string]model.ScoreMetadata)

	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}

	for start := 0; start < len(names); start += 10 {
		batch := names[start:util.Min(start+10, len(names))]
		m, err := db.GetScoreMetadatas(batch)
		if err != nil {
			slog.Warn("score metadata unavailable", "err", err)
			return res
		}
		for k, v := range m {
			res[k] = v
		}
	}
	return res
}
