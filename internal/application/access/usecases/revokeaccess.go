package usecases

import (
	"context"
	"fmt"
	"time"

	"kursly/internal/shared/biztime"
	"kursly/internal/shared/logger"
)

// banPulseDuration is how long the removal ban lasts. The short window kicks
// the user out without leaving a permanent ban, so a later renewal invite
// works immediately.
const banPulseDuration = 60 * time.Second

// MemberRemover bans and unbans users in the private group.
type MemberRemover interface {
	BanChatMember(chatID, userID int64, untilDate int64) error
	UnbanChatMember(chatID, userID int64, onlyIfBanned bool) error
}

// RevokeGroupAccessUseCase removes a user from the private group after their
// entitlement lapsed.
type RevokeGroupAccessUseCase struct {
	remover MemberRemover
	groupID int64
	logger  logger.Interface
}

// NewRevokeGroupAccessUseCase creates a new RevokeGroupAccessUseCase
func NewRevokeGroupAccessUseCase(
	remover MemberRemover,
	groupID int64,
	logger logger.Interface,
) *RevokeGroupAccessUseCase {
	return &RevokeGroupAccessUseCase{
		remover: remover,
		groupID: groupID,
		logger:  logger,
	}
}

// Execute kicks the user with a short ban pulse and immediately lifts it.
func (uc *RevokeGroupAccessUseCase) Execute(ctx context.Context, userID int64) error {
	until := biztime.NowUTC().Add(banPulseDuration).Unix()
	if err := uc.remover.BanChatMember(uc.groupID, userID, until); err != nil {
		return fmt.Errorf("failed to remove user from group: %w", err)
	}

	if err := uc.remover.UnbanChatMember(uc.groupID, userID, true); err != nil {
		// The ban expires on its own; log and move on
		uc.logger.Warnw("failed to lift removal ban", "user_id", userID, "error", err)
	}

	uc.logger.Infow("group access revoked", "user_id", userID)
	return nil
}
