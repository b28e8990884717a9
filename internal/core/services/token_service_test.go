package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/services"
)

func TestTokenService(t *testing.T) {
	liveUser := &domain.User{ID: "user-1", Email: "anna@example.com", Timezone: "UTC"}

	t.Run("Round trip: generated token validates to the same subject", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "user-1").Return(liveUser, nil)
		svc := services.NewTokenService("secret", "ritualist", time.Hour, repo)

		token, err := svc.GenerateToken("user-1")
		require.NoError(t, err)

		subject, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)
	})

	t.Run("Fail: expired token", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService("secret", "ritualist", -time.Minute, repo)

		token, err := svc.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Fail: token signed with a different secret", func(t *testing.T) {
		repo := new(MockUserRepo)
		issuing := services.NewTokenService("other-secret", "ritualist", time.Hour, repo)
		validating := services.NewTokenService("secret", "ritualist", time.Hour, repo)

		token, err := issuing.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = validating.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Fail: wrong issuer", func(t *testing.T) {
		repo := new(MockUserRepo)
		issuing := services.NewTokenService("secret", "someone-else", time.Hour, repo)
		validating := services.NewTokenService("secret", "ritualist", time.Hour, repo)

		token, err := issuing.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = validating.ValidateToken(token)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Fail: deleted user invalidates an otherwise good token", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "user-1").Return(nil, domain.ErrUserNotFound)
		svc := services.NewTokenService("secret", "ritualist", time.Hour, repo)

		token, err := svc.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Fail: garbage string", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService("secret", "ritualist", time.Hour, repo)

		_, err := svc.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})
}
