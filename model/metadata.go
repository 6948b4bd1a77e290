package model

// ScoreMetadata is the optional library metadata for a score file.
type ScoreMetadata struct {
	Title      string
	Composer   string
	Difficulty uint
}
