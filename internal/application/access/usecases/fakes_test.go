package usecases

import (
	"errors"
	"io"
	"log/slog"

	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeGateway plays the Telegram side of the access use cases. Members and
// failures are configured per channel; calls are recorded for assertions.
type fakeGateway struct {
	members     map[string]string // chat ref -> status
	failChecks  map[string]bool
	inviteLink  string
	inviteErr   error
	approveErr  error
	declineErr  error
	banErr      error
	banned      []int64
	unbanned    []int64
	approved    []int64
	declined    []int64
	banUntil    int64
	unbanOnlyIf bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		members:    make(map[string]string),
		failChecks: make(map[string]bool),
		inviteLink: "https://t.me/+abc",
	}
}

func chatKey(chatID any) string {
	if s, ok := chatID.(string); ok {
		return s
	}
	return "numeric"
}

func (f *fakeGateway) GetChatMember(chatID any, userID int64) (*telegram.ChatMember, error) {
	key := chatKey(chatID)
	if f.failChecks[key] {
		return nil, errors.New("telegram unavailable")
	}
	status, ok := f.members[key]
	if !ok {
		status = "left"
	}
	return &telegram.ChatMember{Status: status}, nil
}

func (f *fakeGateway) CreateChatInviteLink(chatID int64, memberLimit int) (*telegram.ChatInviteLink, error) {
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return &telegram.ChatInviteLink{InviteLink: f.inviteLink, MemberLimit: memberLimit}, nil
}

func (f *fakeGateway) BanChatMember(chatID, userID int64, untilDate int64) error {
	if f.banErr != nil {
		return f.banErr
	}
	f.banned = append(f.banned, userID)
	f.banUntil = untilDate
	return nil
}

func (f *fakeGateway) UnbanChatMember(chatID, userID int64, onlyIfBanned bool) error {
	f.unbanned = append(f.unbanned, userID)
	f.unbanOnlyIf = onlyIfBanned
	return nil
}

func (f *fakeGateway) ApproveChatJoinRequest(chatID, userID int64) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approved = append(f.approved, userID)
	return nil
}

func (f *fakeGateway) DeclineChatJoinRequest(chatID, userID int64) error {
	if f.declineErr != nil {
		return f.declineErr
	}
	f.declined = append(f.declined, userID)
	return nil
}
