package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_userRepository_GetBy(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	user, err := repo.GetByEmail(ctx, testutil.User1.Email)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, user.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	user, err = repo.GetByGoogleSubject(ctx, testutil.User2.GoogleSubject.String)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, user.ID)

	_, err = repo.GetByGoogleSubject(ctx, "no-such-subject")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_userRepository_UpdateByID(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewUserRepository()

	// Only the valid fields of the patch are written.
	err := repo.UpdateByID(ctx, testutil.User1.ID, &entity.User{
		GoogleSubject: sql.NullString{Valid: true, String: "google-subject-jane"},
		LastLogin:     sql.NullTime{Valid: true, Time: time.Now()},
	})
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "google-subject-jane", user.GoogleSubject.String)
	require.True(t, user.LastLogin.Valid)
	require.False(t, user.AvatarURL.Valid)
	require.Equal(t, testutil.User1.Name, user.Name)

	// An all-zero patch touches nothing.
	require.NoError(t, repo.UpdateByID(ctx, testutil.User1.ID, &entity.User{}))
}
