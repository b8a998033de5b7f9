package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "black bag", b: "black bag", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "whitespace only differs", a: "black bag", b: "blackbag", want: 1},
		{name: "single characters", a: "a", b: "b", want: 0},
		{name: "one side too short", a: "a", b: "abc", want: 0},
		{name: "healed sealed", a: "healed", b: "sealed", want: 0.8},
		{name: "night nacht", a: "night", b: "nacht", want: 0.25},
		{name: "no shared bigrams", a: "abcd", b: "wxyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Compare(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCompare_RepeatedBigramsCountedOnce(t *testing.T) {
	// "aaaa" has three "aa" bigrams, "aa" has one; only one can pair up.
	assert.InDelta(t, 2.0/4.0, Compare("aaaa", "aa"), 1e-9)
}

func TestCompare_Symmetric(t *testing.T) {
	a := ReportText("Black Backpack", "left at gate")
	b := ReportText("black bag", "found near gate")
	assert.Equal(t, Compare(a, b), Compare(b, a))
}

func TestCompare_ArabicText(t *testing.T) {
	score := Compare("حقيبة سوداء", "حقيبة سوداء صغيرة")
	assert.Greater(t, score, 0.4)
	assert.LessOrEqual(t, score, 1.0)
}

func TestReportText(t *testing.T) {
	assert.Equal(t, "black backpack left at gate", ReportText("Black Backpack", "Left at GATE"))
	assert.Equal(t, " ", ReportText("", ""))
}

func TestBackpackScenarioClearsThreshold(t *testing.T) {
	score := Compare(
		ReportText("black backpack", "left at gate"),
		ReportText("black bag", "found near gate"),
	)
	assert.Greater(t, score, 0.4)
	assert.InDelta(t, 0.428571, score, 1e-5)
}
