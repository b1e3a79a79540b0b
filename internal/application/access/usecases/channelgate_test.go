package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelGate_AllJoined(t *testing.T) {
	gw := newFakeGateway()
	gw.members["@news"] = "member"
	gw.members["@lessons"] = "administrator"

	uc := NewCheckChannelGateUseCase(gw, []string{"@news", "@lessons"}, testLogger())

	unsatisfied, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, unsatisfied)
}

func TestChannelGate_ReportsMissingChannels(t *testing.T) {
	gw := newFakeGateway()
	gw.members["@news"] = "member"
	gw.members["@lessons"] = "left"

	uc := NewCheckChannelGateUseCase(gw, []string{"@news", "@lessons"}, testLogger())

	unsatisfied, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"@lessons"}, unsatisfied)
}

func TestChannelGate_KickedCountsAsOut(t *testing.T) {
	gw := newFakeGateway()
	gw.members["@news"] = "kicked"

	uc := NewCheckChannelGateUseCase(gw, []string{"@news"}, testLogger())

	unsatisfied, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, unsatisfied, 1)
}

func TestChannelGate_FailsClosedOnAPIError(t *testing.T) {
	gw := newFakeGateway()
	gw.members["@news"] = "member"
	gw.failChecks["@lessons"] = true

	uc := NewCheckChannelGateUseCase(gw, []string{"@news", "@lessons"}, testLogger())

	unsatisfied, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"@lessons"}, unsatisfied, "unverifiable membership must count as not joined")
}

func TestChannelGate_NoChannelsConfigured(t *testing.T) {
	uc := NewCheckChannelGateUseCase(newFakeGateway(), nil, testLogger())

	unsatisfied, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, unsatisfied)
}

func TestChatRef(t *testing.T) {
	assert.Equal(t, "@channel", chatRef("@channel"))
	assert.Equal(t, int64(-1001234567890), chatRef("-1001234567890"))
}
