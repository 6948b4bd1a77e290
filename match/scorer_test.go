package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	cases := []struct {
		result Result
		want   int
	}{
		{Result{Class: Perfect}, 100},
		{Result{Class: Good, TimingError: 0.08}, 67},
		{Result{Class: Early, TimingError: -0.2}, 30},
		{Result{Class: Late, TimingError: 0.3}, 20},
		{Result{Class: Late, TimingError: 0.9}, 0}, // floored
		{Result{Class: Missed}, 0},
		{Result{Class: Extra}, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v", c.result.Class), func(t *testing.T) {
			if got := Points(c.result); got != c.want {
				t.Errorf("got %v, wanted %v", got, c.want)
			}
		})
	}
}

func TestScoreTotals(t *testing.T) {
	results := []Result{
		{Class: Perfect},
		{Class: Good, TimingError: 0.05},
		{Class: Missed},
		{Class: Extra},
	}
	s := Score(results, 3)

	assert := assert.New(t)
	// 100 + 70 - 50 - 25
	assert.Equal(95, s.Total)
	assert.Equal(1, s.Perfect)
	assert.Equal(1, s.Good)
	assert.Equal(1, s.Missed)
	assert.Equal(1, s.Extra)
	assert.InDelta(2.0/3, s.Accuracy, 1e-9)
}

func TestScoreFlooredAtZero(t *testing.T) {
	results := []Result{
		{Class: Missed}, {Class: Missed}, {Class: Extra},
	}
	s := Score(results, 2)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, "F", s.Grade)
}

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     string
	}{
		{1.0, "S"},
		{0.95, "S"},
		{0.94, "A"},
		{0.90, "A"},
		{0.85, "B"},
		{0.75, "C"},
		{0.65, "D"},
		{0.59, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%.2f", c.accuracy), func(t *testing.T) {
			if got := Grade(c.accuracy); got != c.want {
				t.Errorf("got %v, wanted %v", got, c.want)
			}
		})
	}
}
