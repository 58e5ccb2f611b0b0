package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalCount(t *testing.T) {
	tests := []struct {
		input string
		value *int
		ok    bool
	}{
		{"", nil, true},
		{"0", ptr(0), true},
		{"8000", ptr(8000), true},
		{"-1", nil, false},
		{"abc", nil, false},
		{"80 00", nil, false},
		{"8000.5", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := parseOptionalCount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.value == nil {
				assert.Nil(t, v)
			} else {
				require.NotNil(t, v)
				assert.Equal(t, *tt.value, *v)
			}
		})
	}
}

func ptr(n int) *int { return &n }

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "", formatOptional(nil))
	assert.Equal(t, "0", formatOptional(ptr(0)))
	assert.Equal(t, "8000", formatOptional(ptr(8000)))
}

func TestSubmittedValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: inputDailyGoal, Value: " 8000 "},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: inputWeeklyGoal, Value: "50000"},
				},
			},
		},
	}

	assert.Equal(t, "8000", submittedValue(data, inputDailyGoal))
	assert.Equal(t, "50000", submittedValue(data, inputWeeklyGoal))
	assert.Equal(t, "", submittedValue(data, "missing"))
}
