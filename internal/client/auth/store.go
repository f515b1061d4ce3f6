package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/iudanet/vocab/internal/client/storage"
	"github.com/iudanet/vocab/internal/crypto"
)

// KeyStoreSalt ключ, под которым лежит соль для ключа шифрования (не шифруется)
const KeyStoreSalt = "storeSalt"

// SealedStore шифрует значения перед записью во внутреннее хранилище.
// Ключ выводится из секрета устройства при первом обращении
type SealedStore struct {
	inner  storage.CredentialStore
	secret string
	key    []byte
	mu     sync.Mutex
}

// Compile-time check that SealedStore implements CredentialStore
var _ storage.CredentialStore = (*SealedStore)(nil)

// NewSealedStore оборачивает inner; secret не может быть пустым
func NewSealedStore(inner storage.CredentialStore, secret string) (*SealedStore, error) {
	if secret == "" {
		return nil, fmt.Errorf("store secret cannot be empty")
	}
	return &SealedStore{inner: inner, secret: secret}, nil
}

// Get читает и расшифровывает значение
func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	encKey, err := s.encryptionKey(ctx)
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.Open(sealed, encKey)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", key, err)
	}

	return string(plaintext), nil
}

// Set шифрует и сохраняет значение
func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	encKey, err := s.encryptionKey(ctx)
	if err != nil {
		return err
	}

	sealed, err := crypto.Seal([]byte(value), encKey)
	if err != nil {
		return fmt.Errorf("failed to seal %s: %w", key, err)
	}

	return s.inner.Set(ctx, key, sealed)
}

// Delete удаляет значение
func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// encryptionKey возвращает ключ, создавая соль при первом запуске
func (s *SealedStore) encryptionKey(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	salt, err := s.loadSalt(ctx)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(s.secret, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive store key: %w", err)
	}

	s.key = key
	return key, nil
}

func (s *SealedStore) loadSalt(ctx context.Context) ([]byte, error) {
	encoded, err := s.inner.Get(ctx, KeyStoreSalt)
	if err == nil {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode store salt: %w", err)
		}
		return salt, nil
	}
	if !errors.Is(err, storage.ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to read store salt: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	if err := s.inner.Set(ctx, KeyStoreSalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("failed to save store salt: %w", err)
	}

	return salt, nil
}
