package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenNotFound indicates the reset token is unknown or already used
var ErrResetTokenNotFound = errors.New("reset token not found or expired")

// ResetTokenStore issues and consumes single-use password reset tokens
type ResetTokenStore interface {
	// Issue creates an opaque token bound to the user ID with the given TTL
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)

	// Consume resolves a token to its user ID and deletes it.
	// Returns ErrResetTokenNotFound for unknown, expired, or reused tokens.
	Consume(ctx context.Context, token string) (string, error)
}

// RedisResetTokenStore implements ResetTokenStore using Redis
type RedisResetTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResetTokenStore creates a reset token store with an existing Redis client
func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{
		client:    client,
		keyPrefix: "auth:reset:",
	}
}

func (s *RedisResetTokenStore) key(token string) string {
	return s.keyPrefix + token
}

// Issue creates an opaque random token bound to the user ID
func (s *RedisResetTokenStore) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := generateOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// Consume resolves the token to its user ID and deletes it atomically
func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return "", ErrResetTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume reset token: %w", err)
	}
	return userID, nil
}

var _ ResetTokenStore = (*RedisResetTokenStore)(nil)

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// InMemoryResetTokenStore provides an in-memory implementation for testing
type InMemoryResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
}

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// NewInMemoryResetTokenStore creates a new in-memory reset token store
func NewInMemoryResetTokenStore() *InMemoryResetTokenStore {
	return &InMemoryResetTokenStore{tokens: make(map[string]resetEntry)}
}

// Issue creates an opaque token bound to the user ID
func (s *InMemoryResetTokenStore) Issue(_ context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := generateOpaqueToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return token, nil
}

// Consume resolves the token to its user ID and deletes it
func (s *InMemoryResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.tokens[token]
	if !exists {
		return "", ErrResetTokenNotFound
	}
	delete(s.tokens, token)
	if time.Now().After(entry.expiresAt) {
		return "", ErrResetTokenNotFound
	}
	return entry.userID, nil
}

var _ ResetTokenStore = (*InMemoryResetTokenStore)(nil)
