package services

import (
	"context"
	"testing"

	"seventour-backend/internal/config"
	"seventour-backend/internal/pkg/referral"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Coins: config.CoinConfig{WelcomeBonus: 5},
	}
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func TestRegister_CreatesUserWithCoinAccount(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored, err := userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.GoldenCoin)
	assert.Equal(t, uint(5), stored.GoldenCoin.Balance)
	assert.Len(t, stored.ReferralCode, referral.CodeLength)
	assert.Equal(t, "USER", stored.Role)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "password123", stored.Password)

	require.NotNil(t, resp.User.CoinBalance)
	assert.Equal(t, uint(5), *resp.User.CoinBalance)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email: "bob@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Email: "bob@example.com", Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ReferralAttribution(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture()

	refResp, err := svc.Register(context.Background(), &RegisterInput{
		Email: "referrer@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{
		Email:        "invited@example.com",
		Password:     "password123",
		ReferralCode: refResp.User.ReferralCode,
	})
	require.NoError(t, err)

	invited, err := userRepo.GetByEmail(context.Background(), "invited@example.com")
	require.NoError(t, err)
	require.NotNil(t, invited.ReferredByID)
	assert.Equal(t, refResp.User.ID, *invited.ReferredByID)

	// Each user gets their own distinct code
	assert.NotEqual(t, refResp.User.ReferralCode, invited.ReferralCode)
}

func TestRegister_UnknownReferralCodeIgnored(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:        "carol@example.com",
		Password:     "password123",
		ReferralCode: "NOSUCHCODE",
	})
	require.NoError(t, err)

	carol, err := userRepo.GetByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	assert.Nil(t, carol.ReferredByID)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email: "dave@example.com", Password: "password123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email: "dave@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "dave@example.com", resp.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email: "erin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "erin@example.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &LoginInput{
		Email: "ghost@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email: "frozen@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByEmail(context.Background(), "frozen@example.com")
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, userRepo.Update(context.Background(), user))

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "frozen@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), &RegisterInput{
		Email: "grace@example.com", Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked by rotation and cannot be reused
	_, err = svc.RefreshToken(context.Background(), reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), &RegisterInput{
		Email: "heidi@example.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), reg.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	t.Parallel()
	svc, _, tokenRepo := newAuthFixture()

	reg, err := svc.Register(context.Background(), &RegisterInput{
		Email: "ivan@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "ivan@example.com", Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, 2, tokenRepo.activeCount(reg.User.ID))

	require.NoError(t, svc.LogoutAll(context.Background(), reg.User.ID))
	assert.Equal(t, 0, tokenRepo.activeCount(reg.User.ID))
}
