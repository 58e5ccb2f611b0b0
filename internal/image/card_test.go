package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(n int) *int { return &n }

func TestThemeColors(t *testing.T) {
	tests := []struct {
		theme       Theme
		top, bottom string
	}{
		{ThemeBlue, "#60a5fa", "#c084fc"},
		{ThemeGreen, "#22c55e", "#84cc16"},
		{ThemeGold, "#eab308", "#f1dd89"},
	}

	for _, tt := range tests {
		top, bottom := tt.theme.Colors()
		assert.Equal(t, tt.top, top)
		assert.Equal(t, tt.bottom, bottom)
	}
}

func TestWeeklyStateSucceeded(t *testing.T) {
	var none *WeeklyState
	assert.False(t, none.Succeeded())
	assert.False(t, (&WeeklyState{Goal: 50000, Steps: 49999}).Succeeded())
	assert.True(t, (&WeeklyState{Goal: 50000, Steps: 50000}).Succeeded())
	assert.False(t, (&WeeklyState{Goal: 0, Steps: 50000}).Succeeded())
}

func TestSummaryCardTotals(t *testing.T) {
	card := SummaryCard{Days: []*int{ptr(8000), nil, ptr(500), nil}}
	assert.Equal(t, 8500, card.total())
	assert.Equal(t, 2, card.filledCount())
}

func TestSummaryCardWeeklySucceeded(t *testing.T) {
	card := SummaryCard{Days: []*int{ptr(30000), ptr(25000)}}
	assert.False(t, card.weeklySucceeded(), "no weekly goal set")

	card.WeeklyGoal = ptr(50000)
	assert.True(t, card.weeklySucceeded())

	card.WeeklyGoal = ptr(60000)
	assert.False(t, card.weeklySucceeded())
}

func TestSummaryCardAllDailySucceeded(t *testing.T) {
	tests := []struct {
		name string
		card SummaryCard
		want bool
	}{
		{"no goal", SummaryCard{Days: []*int{ptr(9000)}}, false},
		{"no entries", SummaryCard{Days: []*int{nil, nil}, Goal: ptr(8000)}, false},
		{"all met, gaps ignored", SummaryCard{Days: []*int{ptr(9000), nil, ptr(8000)}, Goal: ptr(8000)}, true},
		{"one short day breaks it", SummaryCard{Days: []*int{ptr(9000), ptr(7999)}, Goal: ptr(8000)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.allDailySucceeded())
		})
	}
}
