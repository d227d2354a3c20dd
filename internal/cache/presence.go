package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence and typing state live entirely in Redis with short TTLs.
// Key expiry is authoritative: a missing presence key means offline no
// matter what was last written, and typing keys simply age out a few
// seconds after the last keystroke.

const (
	PresenceKeyPrefix = "presence:%s"
	TypingKeyPrefix   = "typing:%s:%d:%s"

	PresenceTTL = 45 * time.Second
	TypingTTL   = 5 * time.Second
)

const (
	StatusOnline  = "online"
	StatusAway    = "away"
	StatusOffline = "offline"
)

// TypingScope identifies which kind of thread a typing indicator is in.
type TypingScope string

const (
	TypingScopeConversation TypingScope = "conversation"
	TypingScopeGroup        TypingScope = "group"
)

func presenceKey(userID string) string {
	return fmt.Sprintf(PresenceKeyPrefix, userID)
}

func typingKey(scope TypingScope, threadID uint, userID string) string {
	return fmt.Sprintf(TypingKeyPrefix, scope, threadID, userID)
}

var ErrUnavailable = errors.New("cache: redis unavailable")

// SetPresence refreshes the user's presence with a fresh TTL.
func SetPresence(ctx context.Context, userID, status string) error {
	if client == nil {
		return ErrUnavailable
	}
	return client.Set(ctx, presenceKey(userID), status, PresenceTTL).Err()
}

// GetPresence returns the user's current status, "offline" when the
// key has expired or was never set.
func GetPresence(ctx context.Context, userID string) (string, error) {
	if client == nil {
		return StatusOffline, ErrUnavailable
	}
	status, err := client.Get(ctx, presenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return StatusOffline, nil
	}
	if err != nil {
		return StatusOffline, err
	}
	return status, nil
}

// ClearPresence drops the user's presence key, marking them offline
// immediately.
func ClearPresence(ctx context.Context, userID string) error {
	if client == nil {
		return ErrUnavailable
	}
	return client.Del(ctx, presenceKey(userID)).Err()
}

// SetTyping marks the user as typing in a thread for a few seconds.
// Callers refresh it while keystrokes continue.
func SetTyping(ctx context.Context, scope TypingScope, threadID uint, userID string) error {
	if client == nil {
		return ErrUnavailable
	}
	return client.Set(ctx, typingKey(scope, threadID, userID), "1", TypingTTL).Err()
}

// ClearTyping drops the typing marker, used when a message is sent.
func ClearTyping(ctx context.Context, scope TypingScope, threadID uint, userID string) error {
	if client == nil {
		return ErrUnavailable
	}
	return client.Del(ctx, typingKey(scope, threadID, userID)).Err()
}

// ListTyping returns the user IDs currently typing in a thread.
func ListTyping(ctx context.Context, scope TypingScope, threadID uint) ([]string, error) {
	if client == nil {
		return nil, ErrUnavailable
	}
	pattern := fmt.Sprintf(TypingKeyPrefix, scope, threadID, "*")
	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(pattern, "*")
	userIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		userIDs = append(userIDs, strings.TrimPrefix(key, prefix))
	}
	return userIDs, nil
}
