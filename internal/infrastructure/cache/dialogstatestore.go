package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialogStatePrefix = "bot:dialog:"
	dialogStateTTL    = 10 * time.Minute
)

// DialogState is one user's position inside a multi-step dialog, plus the
// answers collected so far. Abandoned dialogs expire with the key.
type DialogState struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data,omitempty"`
}

// DialogStateStore keeps per-user dialog state in Redis so a restart does
// not drop admins out of an in-progress form.
type DialogStateStore struct {
	client *redis.Client
}

// NewDialogStateStore creates a new DialogStateStore instance.
func NewDialogStateStore(client *redis.Client) *DialogStateStore {
	return &DialogStateStore{client: client}
}

func dialogStateKey(userID int64) string {
	return dialogStatePrefix + strconv.FormatInt(userID, 10)
}

// Set stores the user's dialog state and refreshes the TTL.
func (s *DialogStateStore) Set(ctx context.Context, userID int64, state *DialogState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal dialog state: %w", err)
	}

	if err := s.client.Set(ctx, dialogStateKey(userID), payload, dialogStateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store dialog state: %w", err)
	}

	return nil
}

// Get returns the user's dialog state, or nil if no dialog is in progress.
func (s *DialogStateStore) Get(ctx context.Context, userID int64) (*DialogState, error) {
	val, err := s.client.Get(ctx, dialogStateKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dialog state: %w", err)
	}

	var state DialogState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dialog state: %w", err)
	}

	return &state, nil
}

// Clear removes the user's dialog state.
func (s *DialogStateStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, dialogStateKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear dialog state: %w", err)
	}
	return nil
}
