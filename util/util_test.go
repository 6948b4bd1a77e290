package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[uint8]string{9: "a", 3: "b", 7: "c"}
	assert.Equal(t, []uint8{3, 7, 9}, SortedKeys(m))
	assert.Len(t, GetKeys(m), 3)
}

func TestMin(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Min(3, 10))
	assert.Equal(3, Min(10, 3))
	assert.Equal(1.5, Min(1.5, 2.5))
}

func TestGatherScorePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.musicxml", "b.xml", "c.mid", "d.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	paths := GatherScorePaths(dir)
	assert.Len(t, paths, 2)
}
