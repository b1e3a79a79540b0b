package usecases

import (
	"context"
	"fmt"

	subscriptionUC "kursly/internal/application/subscription/usecases"
	"kursly/internal/shared/logger"
)

// JoinArbiter approves or declines pending join requests.
type JoinArbiter interface {
	ApproveChatJoinRequest(chatID, userID int64) error
	DeclineChatJoinRequest(chatID, userID int64) error
}

// ArbitrateJoinRequestUseCase decides a pending join request for the private
// group: approve when the user holds a current entitlement, decline
// otherwise. Join requests for other chats are ignored.
type ArbitrateJoinRequestUseCase struct {
	resolver *subscriptionUC.ResolveEntitlementUseCase
	arbiter  JoinArbiter
	groupID  int64
	logger   logger.Interface
}

// NewArbitrateJoinRequestUseCase creates a new ArbitrateJoinRequestUseCase
func NewArbitrateJoinRequestUseCase(
	resolver *subscriptionUC.ResolveEntitlementUseCase,
	arbiter JoinArbiter,
	groupID int64,
	logger logger.Interface,
) *ArbitrateJoinRequestUseCase {
	return &ArbitrateJoinRequestUseCase{
		resolver: resolver,
		arbiter:  arbiter,
		groupID:  groupID,
		logger:   logger,
	}
}

// Execute arbitrates one join request. Returns whether the request was
// approved. Resolution errors decline the request: no entitlement proof, no
// entry.
func (uc *ArbitrateJoinRequestUseCase) Execute(ctx context.Context, chatID, userID int64) (bool, error) {
	if chatID != uc.groupID {
		uc.logger.Debugw("ignoring join request for foreign chat", "chat_id", chatID, "user_id", userID)
		return false, nil
	}

	sub, err := uc.resolver.Execute(ctx, userID)
	if err != nil {
		uc.logger.Errorw("entitlement resolution failed, declining join request",
			"user_id", userID,
			"error", err,
		)
		if declineErr := uc.arbiter.DeclineChatJoinRequest(chatID, userID); declineErr != nil {
			return false, fmt.Errorf("failed to decline join request: %w", declineErr)
		}
		return false, nil
	}

	if sub == nil {
		if err := uc.arbiter.DeclineChatJoinRequest(chatID, userID); err != nil {
			return false, fmt.Errorf("failed to decline join request: %w", err)
		}
		uc.logger.Infow("join request declined, no entitlement", "user_id", userID)
		return false, nil
	}

	if err := uc.arbiter.ApproveChatJoinRequest(chatID, userID); err != nil {
		return false, fmt.Errorf("failed to approve join request: %w", err)
	}

	uc.logger.Infow("join request approved",
		"user_id", userID,
		"subscription_id", sub.ID(),
	)
	return true, nil
}
