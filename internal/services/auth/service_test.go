package auth

import (
	"testing"

	"folio/internal/models"
	"folio/internal/repositories"
	"folio/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	u := &models.User{
		Email:    "user@example.com",
		Password: string(hashed),
		Role:     "user",
	}
	u.ID = 1
	return u
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("Create", mock.Anything).Return(nil)

		svc := NewService(repo)
		user, err := svc.Register("user@example.com", "User", "hunter2!hunter2")
		assert.NoError(t, err)
		assert.Equal(t, "user", user.Role)
		assert.NotEqual(t, "hunter2!hunter2", user.Password, "password must be stored hashed")
		repo.AssertExpectations(t)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo)

		_, err := svc.Register("user@example.com", "User", "plainpassword")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("Create", mock.Anything).Return(repositories.ErrEmailTaken)

		svc := NewService(repo)
		_, err := svc.Register("user@example.com", "User", "hunter2!hunter2")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("successful login", func(t *testing.T) {
		user := hashedUser(t, "hunter2!hunter2")
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "user@example.com").Return(user, nil)
		repo.On("Update", mock.Anything).Return(nil)

		svc := NewService(repo)
		got, access, refresh, err := svc.Login("user@example.com", "hunter2!hunter2")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := utils.ParseToken(access)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Contains(t, claims.Permissions, models.PermissionOverrideWrite)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "user@example.com").Return(hashedUser(t, "hunter2!hunter2"), nil)

		svc := NewService(repo)
		_, _, _, err := svc.Login("user@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "ghost@example.com").Return(nil, repositories.ErrUserNotFound)

		svc := NewService(repo)
		_, _, _, err := svc.Login("ghost@example.com", "hunter2!hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := hashedUser(t, "hunter2!hunter2")
	repo := new(MockUserRepo)
	repo.On("GetByEmail", "user@example.com").Return(user, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("GetByID", user.ID).Return(user, nil)

	svc := NewService(repo)
	_, _, refresh, err := svc.Login("user@example.com", "hunter2!hunter2")
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		access, newRefresh, err := svc.RefreshTokens(refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("stale token version rejected", func(t *testing.T) {
		user.TokenVersion++
		defer func() { user.TokenVersion-- }()

		_, _, err := svc.RefreshTokens(refresh)
		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, _, err := svc.RefreshTokens("not.a.jwt")
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("successful change bumps token version", func(t *testing.T) {
		user := hashedUser(t, "hunter2!hunter2")
		before := user.TokenVersion

		repo := new(MockUserRepo)
		repo.On("GetByID", user.ID).Return(user, nil)
		repo.On("Update", mock.Anything).Return(nil)

		svc := NewService(repo)
		err := svc.ChangePassword(user.ID, "hunter2!hunter2", "s3cret!s3cret")
		assert.NoError(t, err)
		assert.Equal(t, before+1, user.TokenVersion)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret!s3cret")))
		repo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		user := hashedUser(t, "hunter2!hunter2")
		repo := new(MockUserRepo)
		repo.On("GetByID", user.ID).Return(user, nil)

		svc := NewService(repo)
		err := svc.ChangePassword(user.ID, "wrong-password", "s3cret!s3cret")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("weak new password rejected", func(t *testing.T) {
		user := hashedUser(t, "hunter2!hunter2")
		repo := new(MockUserRepo)
		repo.On("GetByID", user.ID).Return(user, nil)

		svc := NewService(repo)
		err := svc.ChangePassword(user.ID, "hunter2!hunter2", "weak")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("IncrementTokenVersion", uint(1)).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.Logout(1))
	repo.AssertExpectations(t)
}
