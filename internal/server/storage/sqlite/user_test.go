package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vocab/internal/models"
	"github.com/iudanet/vocab/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		user *models.User
		name string
	}{
		{
			name: "create new user successfully",
			user: &models.User{
				ID:           uuid.New().String(),
				Login:        "learner1",
				PasswordHash: "hash123",
				CreatedAt:    time.Now(),
			},
		},
		{
			name: "create user with last login",
			user: &models.User{
				ID:           uuid.New().String(),
				Login:        "learner2",
				PasswordHash: "hash456",
				CreatedAt:    time.Now(),
				LastLogin:    timePtr(time.Now()),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			require.NoError(t, err)

			// Verify user was created
			retrieved, err := s.GetUserByID(ctx, tt.user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, retrieved.ID)
			assert.Equal(t, tt.user.Login, retrieved.Login)
			assert.Equal(t, tt.user.PasswordHash, retrieved.PasswordHash)
			assert.Equal(t, tt.user.LastLogin != nil, retrieved.LastLogin != nil)
		})
	}
}

func TestUserStorage_CreateUser_DuplicateLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.User{
		ID:           uuid.New().String(),
		Login:        "duplicate",
		PasswordHash: "hash1",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.User{
		ID:           uuid.New().String(),
		Login:        "duplicate", // Same login
		PasswordHash: "hash2",
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Login:        "findme",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
		LastLogin:    timePtr(time.Now()),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		wantError error
		name      string
		login     string
	}{
		{
			name:  "get existing user",
			login: "findme",
		},
		{
			name:      "get non-existent user",
			login:     "notfound",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetUserByLogin(ctx, tt.login)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, retrieved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, retrieved.ID)
			assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
			assert.NotNil(t, retrieved.LastLogin)
		})
	}
}

func TestUserStorage_GetUserByID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	retrieved, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, retrieved.ID)
	assert.Nil(t, retrieved.LastLogin)

	retrieved, err = s.GetUserByID(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, retrieved)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	loginTime := time.Now().Truncate(time.Second)

	err := s.UpdateLastLogin(ctx, userID, loginTime)
	require.NoError(t, err)

	retrieved, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastLogin)
	assert.True(t, loginTime.Equal(*retrieved.LastLogin))

	// Несуществующий пользователь
	err = s.UpdateLastLogin(ctx, "nonexistent-id", loginTime)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
