package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

// assertHTTP checks the status and message a handler would render for err.
func assertHTTP(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, status, httpErr.StatusCode)
	if message != "" {
		assert.Equal(t, message, httpErr.Message)
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
		wantStatus    int
		wantMessage   string
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Name: "Test User", Email: " Test@Example.com ", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, apperrors.ErrUserNotFound)
				m.On("CreateWithCategories", mock.Anything, mock.AnythingOfType("*model.User"),
					mock.MatchedBy(func(c []model.Category) bool { return len(c) == 8 })).Return(nil)
			},
		},
		{
			name:  "user already exists",
			input: RegisterInput{Name: "Existing", Email: "existing@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
			wantStatus:    409,
			wantMessage:   "User with this email already exists",
		},
		{
			name:  "lost race on insert",
			input: RegisterInput{Name: "Racer", Email: "racer@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racer@example.com").Return(nil, apperrors.ErrUserNotFound)
				m.On("CreateWithCategories", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrUserAlreadyExists)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
			wantStatus:    409,
		},
		{
			name:        "password longer than bcrypt accepts",
			input:       RegisterInput{Name: "Long", Email: "long@example.com", Password: strings.Repeat("p", 80)},
			setupMock:   func(m *MockUserRepository) {},
			wantStatus:  400,
			wantMessage: "Password must be at most 72 bytes",
		},
		{
			name:        "multibyte password over 72 bytes",
			input:       RegisterInput{Name: "Long", Email: "long@example.com", Password: strings.Repeat("é", 40)},
			setupMock:   func(m *MockUserRepository) {},
			wantStatus:  400,
			wantMessage: "Password must be at most 72 bytes",
		},
		{
			name:        "missing password",
			input:       RegisterInput{Name: "No Password", Email: "np@example.com"},
			setupMock:   func(m *MockUserRepository) {},
			wantStatus:  400,
			wantMessage: "Missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewAuthService(repo, auth.NewJWTService("test-secret"), new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.input)

			if tt.wantStatus != 0 {
				assertHTTP(t, err, tt.wantStatus, tt.wantMessage)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "test@example.com", user.Email)
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	categories := defaultCategories()
	require.Len(t, categories, 8)

	byType := map[model.CategoryType][]string{}
	for _, c := range categories {
		byType[c.Type] = append(byType[c.Type], c.Name)
	}
	assert.ElementsMatch(t, []string{"Fitness", "Work", "Learning", "Personal"}, byType[model.CategoryTypeObjective])
	assert.ElementsMatch(t, []string{"Wisdom", "Meals", "Books", "Energy"}, byType[model.CategoryTypeNote])
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: string(hashedPassword)}

	tests := []struct {
		name          string
		input         LoginInput
		setupMocks    func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:  "successful login",
			input: LoginInput{Email: "TEST@example.com", Password: "password123"},
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), user.ID, user.Email, 7*24*time.Hour).Return(nil)
			},
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "test@example.com", Password: "wrong"},
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:  "unknown user",
			input: LoginInput{Email: "nobody@example.com", Password: "password123"},
			setupMocks: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			store := new(MockTokenStore)
			tt.setupMocks(repo, store)
			jwtSvc := auth.NewJWTService("test-secret", auth.WithTTL(15*time.Minute, 7*24*time.Hour))
			svc := NewAuthService(repo, jwtSvc, store)

			pair, err := svc.Login(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, int64(900), pair.ExpiresIn)
				assert.Equal(t, user.ID, pair.User.ID)

				claims, err := jwtSvc.ValidateTokenOfType(pair.AccessToken, auth.TokenTypeAccess)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			}
			repo.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), new(MockTokenStore))
	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com"})
	assertHTTP(t, err, 400, "Email and password are required")
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret")
	user := &model.User{ID: uuid.New(), Email: "test@example.com"}
	oldID, oldToken, err := jwtSvc.GenerateRefreshToken(user.ID, user.Email)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	store.On("GetRefreshToken", mock.Anything, oldID).Return(user.ID, user.Email, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	store.On("DeleteRefreshToken", mock.Anything, oldID).Return(nil)
	store.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(id string) bool { return id != oldID }), user.ID, user.Email, jwtSvc.RefreshTTL()).Return(nil)

	svc := NewAuthService(repo, jwtSvc, store)
	pair, err := svc.Refresh(context.Background(), oldToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, pair.RefreshToken)

	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAuthService_RefreshRejectsRevokedToken(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret")
	tokenID, token, err := jwtSvc.GenerateRefreshToken(uuid.New(), "test@example.com")
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, "", auth.ErrRefreshTokenNotFound)

	svc := NewAuthService(new(MockUserRepository), jwtSvc, store)
	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, access, err := jwtSvc.GenerateAccessToken(uuid.New(), "test@example.com")
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "access tokens cannot refresh")
}

func TestAuthService_Logout(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret")
	userID := uuid.New()
	refreshID, refresh, err := jwtSvc.GenerateRefreshToken(userID, "test@example.com")
	require.NoError(t, err)
	accessID, access, err := jwtSvc.GenerateAccessToken(userID, "test@example.com")
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	store.On("BlacklistAccessToken", mock.Anything, accessID, mock.MatchedBy(func(d time.Duration) bool { return d > 0 })).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtSvc, store)
	require.NoError(t, svc.Logout(context.Background(), refresh, access))
	store.AssertExpectations(t)

	assert.ErrorIs(t, svc.Logout(context.Background(), "garbage", ""), apperrors.ErrInvalidToken)
}
