package usecases

import (
	"context"

	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/logger"
)

// MembershipChecker looks up a user's membership status in a chat.
type MembershipChecker interface {
	GetChatMember(chatID any, userID int64) (*telegram.ChatMember, error)
}

// CheckChannelGateUseCase verifies the user is a member of every required
// channel. The gate fails closed: if Telegram cannot confirm membership for a
// channel, that channel counts as not joined.
type CheckChannelGateUseCase struct {
	checker  MembershipChecker
	channels []string
	logger   logger.Interface
}

// NewCheckChannelGateUseCase creates a new CheckChannelGateUseCase
func NewCheckChannelGateUseCase(
	checker MembershipChecker,
	channels []string,
	logger logger.Interface,
) *CheckChannelGateUseCase {
	return &CheckChannelGateUseCase{
		checker:  checker,
		channels: channels,
		logger:   logger,
	}
}

// Execute returns the channels the user has not joined. An empty slice means
// the gate is open. With no channels configured the gate is always open.
func (uc *CheckChannelGateUseCase) Execute(ctx context.Context, userID int64) ([]string, error) {
	var unsatisfied []string
	for _, channel := range uc.channels {
		member, err := uc.checker.GetChatMember(chatRef(channel), userID)
		if err != nil {
			uc.logger.Warnw("channel membership check failed, treating as not joined",
				"channel", channel,
				"user_id", userID,
				"error", err,
			)
			unsatisfied = append(unsatisfied, channel)
			continue
		}
		if !member.IsIn() {
			unsatisfied = append(unsatisfied, channel)
		}
	}
	return unsatisfied, nil
}

// Channels returns the configured required channels.
func (uc *CheckChannelGateUseCase) Channels() []string {
	return uc.channels
}
