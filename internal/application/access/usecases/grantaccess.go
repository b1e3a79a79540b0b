package usecases

import (
	"context"
	"fmt"

	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/logger"
)

// InviteIssuer creates invite links and lifts bans in the private group.
type InviteIssuer interface {
	CreateChatInviteLink(chatID int64, memberLimit int) (*telegram.ChatInviteLink, error)
	UnbanChatMember(chatID, userID int64, onlyIfBanned bool) error
}

// GrantGroupAccessUseCase issues a fresh single-use invite link into the
// private group for a user who just gained entitlement.
type GrantGroupAccessUseCase struct {
	issuer  InviteIssuer
	groupID int64
	logger  logger.Interface
}

// NewGrantGroupAccessUseCase creates a new GrantGroupAccessUseCase
func NewGrantGroupAccessUseCase(
	issuer InviteIssuer,
	groupID int64,
	logger logger.Interface,
) *GrantGroupAccessUseCase {
	return &GrantGroupAccessUseCase{
		issuer:  issuer,
		groupID: groupID,
		logger:  logger,
	}
}

// Execute returns a single-use invite link. A leftover ban from an earlier
// revocation is lifted first so the link is actually usable.
func (uc *GrantGroupAccessUseCase) Execute(ctx context.Context, userID int64) (string, error) {
	if err := uc.issuer.UnbanChatMember(uc.groupID, userID, true); err != nil {
		// Not fatal: the user may simply have never been banned
		uc.logger.Debugw("unban before invite failed", "user_id", userID, "error", err)
	}

	link, err := uc.issuer.CreateChatInviteLink(uc.groupID, 1)
	if err != nil {
		return "", fmt.Errorf("failed to create invite link: %w", err)
	}

	uc.logger.Infow("invite link issued", "user_id", userID)
	return link.InviteLink, nil
}
