package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/vocab/internal/client/storage"
)

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		// Значение валидно только внутри транзакции, поэтому копируем
		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// Set stores value under key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return nil
	})
}

// Delete removes key. Absent keys are ignored
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}

		return nil
	})
}
