package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*entity.User // by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, hashedToken string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == hashedToken &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, id, hashedToken string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.ResetPasswordToken = &hashedToken
	u.ResetPasswordExpire = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id, name, email string, avatar *entity.Avatar) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Name = name
	u.Email = email
	if avatar != nil {
		u.Avatar = avatar
	}
	cp := *u
	return &cp, nil
}

// fakeSender records sent emails and can be told to fail.
type fakeSender struct {
	sent []string // recipient addresses
	fail error
}

func (s *fakeSender) Send(_ context.Context, to, _, _, _ string) error {
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, to)
	return nil
}

// fakeImageStore records uploads and deletions.
type fakeImageStore struct {
	uploads   int
	destroyed []string
	failUp    error
}

func (s *fakeImageStore) Upload(_ context.Context, _ io.Reader, folder, filename, _ string) (string, string, error) {
	if s.failUp != nil {
		return "", "", s.failUp
	}
	s.uploads++
	id := fmt.Sprintf("%s/obj-%d", folder, s.uploads)
	return id, "https://img.example.com/" + id + "/" + filename, nil
}

func (s *fakeImageStore) Destroy(_ context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	return nil
}

func newAuthService(r repo.UserRepository, sender *fakeSender, images ImageStore) *AuthService {
	return NewAuthService(r, helpers.NewTokenManager("test-secret", time.Hour), images, sender, nil, nil, 10*time.Minute)
}

func TestRegisterIssuesSession(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})

	u, sess, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEqual(t, "Abcdef1!", u.Password, "password must be stored hashed")
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Alice Again", "alice@example.com", "Abcdef1!")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, apperr.ErrUserAlreadyExists.Error(), apperr.MessageOf(err))
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})
	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, sess, err := svc.Login(context.Background(), "alice@example.com", "Abcdef1!")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEmpty(t, sess.Token)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "Abcdef1!")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
		assert.Equal(t, apperr.ErrInvalidEmail.Error(), apperr.MessageOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "WrongPw1!")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
		assert.Equal(t, apperr.ErrInvalidPassword.Error(), apperr.MessageOf(err))
	})
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	users := newFakeUserRepo()
	sender := &fakeSender{}
	svc := newAuthService(users, sender, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com", "https://shop.example.com/"))
	assert.Equal(t, []string{"alice@example.com"}, sender.sent)

	stored := users.users[u.ID]
	require.NotNil(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpire)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *stored.ResetPasswordExpire, 5*time.Second)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), &fakeSender{}, &fakeImageStore{})

	err := svc.ForgotPassword(context.Background(), "nobody@example.com", "https://shop.example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestForgotPasswordClearsTokenWhenDeliveryFails(t *testing.T) {
	users := newFakeUserRepo()
	sender := &fakeSender{fail: errors.New("smtp down")}
	svc := newAuthService(users, sender, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	err = svc.ForgotPassword(context.Background(), "alice@example.com", "https://shop.example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))

	// the stored token must not outlive the failed email
	stored := users.users[u.ID]
	assert.Nil(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)
}

func TestResetPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	plain, hashed, expiresAt, err := helpers.GenerateResetToken(10 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(context.Background(), u.ID, hashed, expiresAt))

	got, sess, err := svc.ResetPassword(context.Background(), plain, "NewPass1!", "NewPass1!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, sess.Token)

	// new credential works, token is consumed
	_, _, err = svc.Login(context.Background(), "alice@example.com", "NewPass1!")
	assert.NoError(t, err)
	_, _, err = svc.ResetPassword(context.Background(), plain, "Other1!aa", "Other1!aa")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, apperr.ErrInvalidResetToken.Error(), apperr.MessageOf(err))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	plain, hashed, _, err := helpers.GenerateResetToken(time.Minute)
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(context.Background(), u.ID, hashed, time.Now().Add(-time.Minute)))

	_, _, err = svc.ResetPassword(context.Background(), plain, "NewPass1!", "NewPass1!")
	require.Error(t, err)
	assert.Equal(t, apperr.ErrInvalidResetToken.Error(), apperr.MessageOf(err))
}

func TestResetPasswordMismatchedConfirmation(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	plain, hashed, expiresAt, err := helpers.GenerateResetToken(10 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(context.Background(), u.ID, hashed, expiresAt))

	_, _, err = svc.ResetPassword(context.Background(), plain, "NewPass1!", "Different1!")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, apperr.ErrPasswordMismatch.Error(), apperr.MessageOf(err))
}

func TestUpdatePassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSender{}, &fakeImageStore{})
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)
	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), stored, "WrongPw1!", "NewPass1!", "NewPass1!")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), stored, "Abcdef1!", "NewPass1!", "Other1!aa")
		require.Error(t, err)
		assert.Equal(t, apperr.ErrPasswordMismatch.Error(), apperr.MessageOf(err))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(context.Background(), stored, "Abcdef1!", "NewPass1!", "NewPass1!"))
		_, _, err := svc.Login(context.Background(), "alice@example.com", "NewPass1!")
		assert.NoError(t, err)
	})
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	users := newFakeUserRepo()
	images := &fakeImageStore{}
	svc := newAuthService(users, &fakeSender{}, images)
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	// first upload
	stored, _ := users.GetByID(context.Background(), u.ID)
	updated, err := svc.UpdateProfile(context.Background(), stored, "Alice B", "alice.b@example.com", &ImageUpload{
		Reader: strings.NewReader("img-bytes"), Filename: "me.png", ContentType: "image/png", Folder: "avatars",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
	require.NotNil(t, updated.Avatar)
	firstID := updated.Avatar.PublicID
	assert.Empty(t, images.destroyed)

	// replacement removes the previous external image
	updated, err = svc.UpdateProfile(context.Background(), updated, "Alice B", "alice.b@example.com", &ImageUpload{
		Reader: strings.NewReader("img-bytes-2"), Filename: "me2.png", ContentType: "image/png", Folder: "avatars",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{firstID}, images.destroyed)
	assert.NotEqual(t, firstID, updated.Avatar.PublicID)
}

func TestUpdateProfileWithoutAvatarKeepsExisting(t *testing.T) {
	users := newFakeUserRepo()
	images := &fakeImageStore{}
	svc := newAuthService(users, &fakeSender{}, images)
	u, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "Abcdef1!")
	require.NoError(t, err)

	stored, _ := users.GetByID(context.Background(), u.ID)
	stored.Avatar = &entity.Avatar{PublicID: "avatars/old", URL: "https://img.example.com/avatars/old"}
	users.users[u.ID].Avatar = stored.Avatar

	updated, err := svc.UpdateProfile(context.Background(), stored, "Alice C", "alice@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice C", updated.Name)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "avatars/old", updated.Avatar.PublicID)
	assert.Zero(t, images.uploads)
	assert.Empty(t, images.destroyed)
}
