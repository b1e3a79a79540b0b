package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDeliverBroadcast_CountsOutcomes(t *testing.T) {
	errs := map[int64]error{
		2: &telegram.APIError{ErrorCode: 403, Description: "bot was blocked by the user"},
		3: errors.New("connection reset"),
	}

	var sent []int64
	send := func(chatID int64, text string) error {
		sent = append(sent, chatID)
		return errs[chatID]
	}

	delivered, blocked, failed := deliverBroadcast(context.Background(), []int64{1, 2, 3, 4}, "hi", send, 0, testLogger())

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, blocked)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []int64{1, 2, 3, 4}, sent)
}

func TestDeliverBroadcast_RetriesOnceAfterRateLimit(t *testing.T) {
	attempts := 0
	send := func(chatID int64, text string) error {
		attempts++
		if attempts == 1 {
			return &telegram.APIError{ErrorCode: 429, Description: "too many requests", RetryAfter: 1}
		}
		return nil
	}

	delivered, blocked, failed := deliverBroadcast(context.Background(), []int64{1}, "hi", send, 0, testLogger())

	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, delivered)
	assert.Zero(t, blocked)
	assert.Zero(t, failed)
}

func TestDeliverBroadcast_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sent int
	send := func(chatID int64, text string) error {
		sent++
		return nil
	}

	delivered, _, _ := deliverBroadcast(ctx, []int64{1, 2, 3}, "hi", send, 0, testLogger())

	assert.Zero(t, sent)
	assert.Zero(t, delivered)
}
