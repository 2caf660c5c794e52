package services

import (
	"context"
	"testing"

	"seventour-backend/internal/adapters/persistence/models"
	"seventour-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email, role string) *models.User {
	t.Helper()
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		Password:     hashed,
		Role:         role,
		ReferralCode: email, // uniqueness stand-in
		IsActive:     true,
	}
	require.NoError(t, repo.CreateWithCoinAccount(context.Background(), user, 5))
	return user
}

func TestSetRole(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	admin := seedUser(t, repo, "admin@example.com", models.RoleAdmin)
	user := seedUser(t, repo, "user@example.com", models.RoleUser)

	updated, err := svc.SetRole(context.Background(), user.ID, admin.ID, models.RoleSubAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSubAdmin, updated.Role)

	_, err = svc.SetRole(context.Background(), user.ID, admin.ID, "SUPERHERO")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.SetRole(context.Background(), admin.ID, admin.ID, models.RoleUser)
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestDeleteUser_SelfGuard(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	admin := seedUser(t, repo, "admin@example.com", models.RoleAdmin)
	user := seedUser(t, repo, "user@example.com", models.RoleUser)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID, admin.ID), ErrCannotDeleteSelf)
	require.NoError(t, svc.DeleteUser(context.Background(), user.ID, admin.ID))

	_, err := svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFoundSvc)
}

func TestUpdateUserByAdmin_PartialUpdate(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "user@example.com", models.RoleUser)

	first := "Updated"
	inactive := false
	updated, err := svc.UpdateUserByAdmin(context.Background(), user.ID, &UpdateUserByAdminInput{
		FirstName: &first,
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.FirstName)
	assert.False(t, updated.IsActive)
	// Untouched fields keep their values
	assert.Equal(t, "user@example.com", updated.Email)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "user@example.com", models.RoleUser)

	err := svc.ChangePassword(context.Background(), user.ID, "wrong-old", "newpassword1")
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "password123", "newpassword1"))

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("newpassword1", stored.Password))
	assert.False(t, password.Verify("password123", stored.Password))
}

func TestSetProfilePhoto(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := seedUser(t, repo, "user@example.com", models.RoleUser)

	updated, err := svc.SetProfilePhoto(context.Background(), user.ID, "users/profile_photos/1/123.png")
	require.NoError(t, err)
	assert.Equal(t, "users/profile_photos/1/123.png", updated.ProfilePhoto)
}

func TestListUsers_Pagination(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	seedUser(t, repo, "a@example.com", models.RoleUser)
	seedUser(t, repo, "b@example.com", models.RoleUser)
	seedUser(t, repo, "c@example.com", models.RoleUser)

	out, err := svc.ListUsers(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Total)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, 2, out.TotalPages)
}
