package constants

import "os"

// GetScoreDir is where the library command looks for notation documents.
func GetScoreDir() string {
	path := os.Getenv("SCORE_PATH")
	if path != "" {
		return path
	}
	return "./scores"
}

// GetMetadataTable is the DynamoDB table holding score metadata.
func GetMetadataTable() string {
	table := os.Getenv("METADATA_TABLE")
	if table != "" {
		return table
	}
	return "pianogame-metadata"
}

// GetMetadataEndpoint is the DynamoDB endpoint; defaults to a local
// instance so the library command works offline during development.
func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

// Session tuning defaults. All of these are startup parameters, overridable
// per session through session.Config.
const (
	// DefaultTempo is the fallback beats-per-minute when the score
	// declares none.
	DefaultTempo = 120.0

	// DefaultWindowSeconds is how long after the first correct note of a
	// chord the remaining notes may arrive.
	DefaultWindowSeconds = 0.25

	// DefaultHoldMinBeats is the minimum written length for a note to be
	// tracked for early release.
	DefaultHoldMinBeats = 1.0

	// DefaultHoldReleaseToleranceBeats is how far before a hold note's end
	// the key may come up without counting as a break.
	DefaultHoldReleaseToleranceBeats = 0.1

	// DefaultCountdownSeconds runs before the performance clock starts.
	DefaultCountdownSeconds = 3.0

	// DefaultToleranceSeconds is the early/late timing tolerance used by
	// the offline matcher.
	DefaultToleranceSeconds = 0.1
)
