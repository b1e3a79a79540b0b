package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantAccess_IssuesSingleUseLink(t *testing.T) {
	gw := newFakeGateway()
	uc := NewGrantGroupAccessUseCase(gw, testGroupID, testLogger())

	link, err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/+abc", link)

	// A stale ban is lifted before the link is created, and only if present.
	assert.Equal(t, []int64{42}, gw.unbanned)
	assert.True(t, gw.unbanOnlyIf)
}

func TestGrantAccess_InviteFailurePropagates(t *testing.T) {
	gw := newFakeGateway()
	gw.inviteErr = assert.AnError
	uc := NewGrantGroupAccessUseCase(gw, testGroupID, testLogger())

	_, err := uc.Execute(context.Background(), 42)
	assert.Error(t, err)
}

func TestRevokeAccess_BanPulse(t *testing.T) {
	gw := newFakeGateway()
	uc := NewRevokeGroupAccessUseCase(gw, testGroupID, testLogger())

	err := uc.Execute(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, []int64{42}, gw.banned)
	assert.Equal(t, []int64{42}, gw.unbanned)
	assert.True(t, gw.unbanOnlyIf)

	// The ban is a short pulse, not a permanent exile.
	until := time.Unix(gw.banUntil, 0)
	assert.WithinDuration(t, time.Now().Add(banPulseDuration), until, 5*time.Second)
}

func TestRevokeAccess_BanFailurePropagates(t *testing.T) {
	gw := newFakeGateway()
	gw.banErr = assert.AnError
	uc := NewRevokeGroupAccessUseCase(gw, testGroupID, testLogger())

	err := uc.Execute(context.Background(), 42)
	assert.Error(t, err)
	assert.Empty(t, gw.banned)
}
