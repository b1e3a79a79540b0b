package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateKeyboard_ListsOnlyGivenChannels(t *testing.T) {
	kb := gateKeyboard([]string{"@courses"})

	// One row for the missing channel plus the recheck row, nothing else.
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "https://t.me/courses", kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "gate:check", kb.InlineKeyboard[1][0].CallbackData)
}

func TestGateKeyboard_NumericChannelHasNoURL(t *testing.T) {
	kb := gateKeyboard([]string{"-1001234567890"})

	require.Len(t, kb.InlineKeyboard, 2)
	assert.Empty(t, kb.InlineKeyboard[0][0].URL)
	assert.Equal(t, "gate:check", kb.InlineKeyboard[0][0].CallbackData)
}

func TestGateKeyboard_NoChannelsStillOffersRecheck(t *testing.T) {
	kb := gateKeyboard(nil)

	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "gate:check", kb.InlineKeyboard[0][0].CallbackData)
}
