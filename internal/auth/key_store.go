package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"hijabstore/internal/cache"
	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
)

const (
	apiKeyCachePrefix = "apikey:"
	apiKeyOwnerPrefix = "apikey:owner:"
)

// KeyStoreInterface resolves API keys to their owners.
type KeyStoreInterface interface {
	Lookup(ctx context.Context, apiKey string) (*model.UserSummary, error)
	ForgetUser(ctx context.Context, userID uint) error
}

// KeyStore looks keys up in the users table, with a Redis read-through cache.
type KeyStore struct {
	users repository.UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// Ensure KeyStore implements KeyStoreInterface
var _ KeyStoreInterface = (*KeyStore)(nil)

// NewKeyStore creates a key store. A zero ttl disables caching.
func NewKeyStore(users repository.UserRepository, cache *cache.Client, ttl time.Duration) *KeyStore {
	return &KeyStore{users: users, cache: cache, ttl: ttl}
}

// Lookup returns the owner of apiKey, or ErrInvalidAPIKey.
func (s *KeyStore) Lookup(ctx context.Context, apiKey string) (*model.UserSummary, error) {
	if !IsWellFormedAPIKey(apiKey) {
		return nil, apperrors.ErrInvalidAPIKey
	}

	var cached model.UserSummary
	if s.cache.GetJSON(ctx, apiKeyCachePrefix+apiKey, &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidAPIKey
		}
		return nil, apperrors.Store(err)
	}

	summary := user.Summary()
	_ = s.cache.SetJSON(ctx, apiKeyCachePrefix+apiKey, summary, s.ttl)
	_ = s.cache.Set(ctx, ownerKey(user.ID), []byte(apiKey), s.ttl)
	return &summary, nil
}

// ForgetUser drops whatever is cached for the user's key, so a deleted or
// edited user is re-read from the store on the next lookup.
func (s *KeyStore) ForgetUser(ctx context.Context, userID uint) error {
	apiKey, _ := s.cache.Get(ctx, ownerKey(userID))
	if apiKey == nil {
		return nil
	}
	return s.cache.Delete(ctx, apiKeyCachePrefix+string(apiKey), ownerKey(userID))
}

func ownerKey(userID uint) string {
	return apiKeyOwnerPrefix + strconv.FormatUint(uint64(userID), 10)
}
