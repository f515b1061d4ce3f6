package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/vocab/internal/client/storage"
)

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакет существует
	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketCredentials) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	// Каталог вместо файла открыть как БД нельзя
	store, err := New(ctx, t.TempDir())
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Закрываем БД
	err = store.Close()
	assert.NoError(t, err)

	// После закрытия поле db должно стать nil
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать и должен просто ничего не делать
	err = store.Close()
	assert.NoError(t, err)

	// Операции после закрытия возвращают ошибку, а не панику
	_, err = store.Get(ctx, storage.KeyAccessToken)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Set(ctx, storage.KeyAccessToken, "A1"), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, storage.KeyAccessToken), storage.ErrStorageClosed)
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	// Открываем БД вручную без создания бакетов
	db, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	store := &Storage{db: db}

	err = store.initBuckets()
	assert.NoError(t, err)

	err = db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketCredentials) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "accessToken", "A1"))
	require.NoError(t, store.Close())

	// Данные переживают перезапуск клиента
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	got, err := store.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, "A1", got)
}
