package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/ecotrack/db"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
)

func newTestAuthService(t *testing.T, gdb *db.GormDB) AuthService {
	t.Helper()
	return NewAuthService(db.NewAuthRepo(gdb), testConfig())
}

func TestSignupAndLogin(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)

	created, err := svc.SignupUser(&models.User{
		Fullname: "Ada Obi",
		Email:    "ada@example.com",
		Password: "s3cret99",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Empty(t, created.Password)
	assert.NotEmpty(t, created.HashedPassword)

	response, loginErr := svc.LoginUser(&models.LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cret99",
	})
	require.Nil(t, loginErr)
	assert.Equal(t, created.ID, response.ID)
	assert.NotEmpty(t, response.AccessToken)

	_, loginErr = svc.LoginUser(&models.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	require.NotNil(t, loginErr)
	assert.Equal(t, apiError.ErrInvalidPassword, loginErr)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)

	_, err := svc.SignupUser(&models.User{
		Fullname: "Ada Obi",
		Email:    "dup@example.com",
		Password: "s3cret99",
	})
	require.NoError(t, err)

	_, err = svc.SignupUser(&models.User{
		Fullname: "Another Ada",
		Email:    "dup@example.com",
		Password: "s3cret99",
	})
	require.Error(t, err)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)

	_, err := svc.SignupUser(&models.User{
		Fullname: "Ada Obi",
		Email:    "short@example.com",
		Password: "abc",
	})
	require.Error(t, err)
}

func TestGetUserByEmail(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)
	user := createTestUser(t, gdb, "lookup@example.com")

	found, err := svc.GetUserByEmail("lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// exact match only, no case folding
	_, err = svc.GetUserByEmail("Lookup@Example.com")
	assert.ErrorIs(t, err, apiError.ErrNotFound)

	_, err = svc.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, apiError.ErrNotFound)
}

func TestGetOrCreateSocialUser(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)

	first, loginErr := svc.GetOrCreateSocialUser("social@example.com", "Social Sam")
	require.Nil(t, loginErr)
	assert.NotEmpty(t, first.AccessToken)

	// second login resolves the same row instead of creating another
	second, loginErr := svc.GetOrCreateSocialUser("social@example.com", "Social Sam")
	require.Nil(t, loginErr)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, gdb.DB.Model(&models.User{}).Where("email = ?", "social@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, loginErr = svc.GetOrCreateSocialUser("", "No Email")
	require.NotNil(t, loginErr)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newTestAuthService(t, gdb)
	repo := db.NewAuthRepo(gdb)

	require.NoError(t, svc.LogoutUser("some-access-token", "out@example.com"))
	assert.True(t, repo.TokenInBlacklist("some-access-token"))
	assert.False(t, repo.TokenInBlacklist("other-token"))
}
