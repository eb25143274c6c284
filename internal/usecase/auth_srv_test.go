package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"donor-booking/internal/data/entity"
	"donor-booking/internal/data/repository"
	"donor-booking/internal/dto/request"
	"donor-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthServiceForTest(t *testing.T) (*authService, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository(zap.NewNop())
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24}).
		WithClock(func() time.Time { return fixedNow })

	svc := NewAuthService(users, tokens, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return fixedNow }
	return svc, users
}

func registerReq() *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:      " Nguyen Van A ",
		DOB:       "1995-06-15",
		Gender:    "Nam",
		City:      "Ha Noi",
		District:  "Ba Dinh",
		Ward:      "Kim Ma",
		Address:   "12 Kim Ma",
		Username:  "vana",
		Password:  "secret123",
		Email:     "VanA@Example.com",
		Phone:     "0912345678",
		BloodType: "O+",
	}
}

func TestRegister(t *testing.T) {
	svc, users := newAuthServiceForTest(t)

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, fixedNow.Add(24*time.Hour), resp.ExpiresAt)
	assert.Equal(t, "Nguyen Van A", resp.User.Name)
	assert.Equal(t, "vana@example.com", resp.User.Email)
	assert.Equal(t, entity.RoleDonor, resp.User.Role)
	assert.True(t, resp.User.EligibleToDonate)

	stored, err := users.FindByUsername(context.Background(), "vana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	tests := []struct {
		name  string
		mut   func(r *request.RegisterRequest)
		field string
	}{
		{"email", func(r *request.RegisterRequest) { r.Username, r.Phone = "other", "0999999999" }, "email"},
		{"username", func(r *request.RegisterRequest) { r.Email, r.Phone = "b@example.com", "0999999999" }, "username"},
		{"phone", func(r *request.RegisterRequest) { r.Email, r.Username = "b@example.com", "other" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerReq()
			tt.mut(req)

			_, err := svc.Register(context.Background(), req)
			require.ErrorIs(t, err, ErrAlreadyExists)

			var dup *DuplicateError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.field, dup.Field)
		})
	}
}

func TestRegisterAgeWindow(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	tests := []struct {
		dob string
		ok  bool
	}{
		{"2007-03-01", true},  // turns 18 today
		{"2007-03-02", false}, // 17 for one more day
		{"1964-03-02", true},  // 60
		{"1964-03-01", false}, // 61 today
	}

	for i, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			req := registerReq()
			req.DOB = tt.dob
			req.Username = "user" + tt.dob
			req.Email = tt.dob + "@example.com"
			req.Phone = "09000000" + string(rune('0'+i)) + "0"

			_, err := svc.Register(context.Background(), req)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, "dob")
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	req := registerReq()
	req.Email = "not-an-email"
	req.Password = "123"
	req.BloodType = "C+"

	_, err := svc.Register(context.Background(), req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "bloodType")
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{Username: "vana", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	_, err = svc.Login(context.Background(), &request.LoginRequest{Username: "vana", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, unknownErr := svc.Login(context.Background(), &request.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.Equal(t, err, unknownErr)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)
	registered, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	userID, role, err := svc.Authenticate(context.Background(), registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID.String())
	assert.Equal(t, entity.RoleDonor, role)

	_, _, err = svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// valid signature, unknown subject
	orphan, _, err := svc.tokens.Issue(uuid.New(), "donor")
	require.NoError(t, err)
	_, _, err = svc.Authenticate(context.Background(), orphan)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetProfile(t *testing.T) {
	authSvc, users := newAuthServiceForTest(t)
	registered, err := authSvc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	svc := NewUserService(users, zap.NewNop())

	profile, err := svc.GetProfile(context.Background(), uuid.MustParse(registered.User.ID))
	require.NoError(t, err)
	assert.Equal(t, "vana", profile.Username)
	assert.Equal(t, "1995-06-15", profile.DOB)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
