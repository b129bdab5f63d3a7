package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/ecommerce-backend/pkg/apperr"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/ecommerce-backend/pkg/mailer"
	tpl "github.com/oksasatya/ecommerce-backend/pkg/mailer/templates"
)

// ImageStore is the external image host collaborator.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (id, url string, err error)
	Destroy(ctx context.Context, id string) error
}

// resetPath is the fixed path appended to the frontend base URL when
// composing the reset link.
const resetPath = "/password/reset/"

// AuthService orchestrates the credential store, token issuer and the
// email/image collaborators.
type AuthService struct {
	Repo     repo.UserRepository
	Tokens   *helpers.TokenManager
	Images   ImageStore
	Mailer   mailer.Sender
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	ResetTTL time.Duration
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(r repo.UserRepository, tokens *helpers.TokenManager, images ImageStore, sender mailer.Sender, pub *helpers.RabbitPublisher, logger *logrus.Logger, resetTTL time.Duration) *AuthService {
	return &AuthService{
		Repo:     r,
		Tokens:   tokens,
		Images:   images,
		Mailer:   sender,
		Pub:      pub,
		Logger:   logger,
		ResetTTL: resetTTL,
	}
}

func (s *AuthService) issueSession(u *entity.User) (Session, error) {
	token, exp, err := s.Tokens.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return Session{}, apperr.Dependency("failed to issue session token", err)
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Register creates the user with the default role and issues a session.
// Payload shape (email format, password policy) is validated at binding;
// the email-uniqueness precondition is enforced here.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, Session, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, Session{}, apperr.Conflict(apperr.ErrUserAlreadyExists.Error())
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, Session{}, apperr.Dependency("failed to check existing user", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, apperr.Dependency("failed to hash password", err)
	}
	u := &entity.User{Name: name, Email: email, Password: hash, Role: entity.RoleUser}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, Session{}, apperr.Dependency("failed to create user", err)
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	s.enqueueWelcomeEmail(ctx, u)
	return u, sess, nil
}

// enqueueWelcomeEmail publishes a best-effort welcome job; registration
// never fails on queue errors.
func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: map[string]any{"Name": u.Name}}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

// Login validates credentials and issues a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, apperr.Unauthorized(apperr.ErrInvalidEmail.Error())
		}
		return nil, Session{}, apperr.Dependency("failed to look up user", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, apperr.Unauthorized(apperr.ErrInvalidPassword.Error())
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// GetProfile returns the caller's current record.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(apperr.ErrUserNotFound.Error())
		}
		return nil, apperr.Dependency("failed to load user", err)
	}
	return u, nil
}

// ForgotPassword issues a reset token, persists its digest, and emails the
// reset link. If delivery fails the stored token is cleared before the
// error is reported, so a token is either fully live or fully absent.
func (s *AuthService) ForgotPassword(ctx context.Context, email, frontendBaseURL string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(apperr.ErrUserNotFound.Error())
		}
		return apperr.Dependency("failed to look up user", err)
	}

	plain, hashed, expiresAt, err := helpers.GenerateResetToken(s.ResetTTL)
	if err != nil {
		return apperr.Dependency("failed to generate reset token", err)
	}
	if err := s.Repo.SetResetToken(ctx, u.ID, hashed, expiresAt); err != nil {
		return apperr.Dependency("failed to store reset token", err)
	}

	resetURL := strings.TrimRight(frontendBaseURL, "/") + resetPath + plain
	html, err := tpl.RenderHTML(tpl.ResetPassword, map[string]any{
		"Name":      u.Name,
		"ResetURL":  resetURL,
		"ExpiresIn": s.ResetTTL.String(),
	})
	if err == nil {
		err = s.Mailer.Send(ctx, u.Email, tpl.Subject(tpl.ResetPassword), "Reset your password: "+resetURL, html)
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email delivery failed")
		}
		if clearErr := s.Repo.ClearResetToken(ctx, u.ID); clearErr != nil && s.Logger != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Error("reset token rollback failed")
		}
		return apperr.Dependency("failed to send reset password email", err)
	}
	return nil
}

// ResetPassword consumes a one-time reset token. The token is looked up by
// re-hashing caller input; a used or expired token never matches.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword, confirmPassword string) (*entity.User, Session, error) {
	u, err := s.Repo.GetByResetToken(ctx, helpers.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, apperr.Validation(apperr.ErrInvalidResetToken.Error())
		}
		return nil, Session{}, apperr.Dependency("failed to look up reset token", err)
	}
	if newPassword != confirmPassword {
		return nil, Session{}, apperr.Validation(apperr.ErrPasswordMismatch.Error())
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, Session{}, apperr.Dependency("failed to hash password", err)
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, Session{}, apperr.Dependency("failed to update password", err)
	}
	if err := s.Repo.ClearResetToken(ctx, u.ID); err != nil {
		return nil, Session{}, apperr.Dependency("failed to clear reset token", err)
	}

	sess, err := s.issueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// UpdatePassword replaces the caller's password after verifying the
// current one. No new session is issued.
func (s *AuthService) UpdatePassword(ctx context.Context, u *entity.User, currentPassword, newPassword, confirmNewPassword string) error {
	if !helpers.CompareHashAndPassword(u.Password, currentPassword) {
		return apperr.Validation("current password is incorrect")
	}
	if newPassword != confirmNewPassword {
		return apperr.Validation(apperr.ErrPasswordMismatch.Error())
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Dependency("failed to hash password", err)
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return apperr.Dependency("failed to update password", err)
	}
	return nil
}

// ImageUpload carries a file field from a multipart form.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Folder      string
}

// UpdateProfile updates name, email and optionally the avatar. Replacing
// an avatar deletes the previous external image best-effort first; the
// delete, upload and row update are not one transaction.
func (s *AuthService) UpdateProfile(ctx context.Context, u *entity.User, name, email string, avatar *ImageUpload) (*entity.User, error) {
	var newAvatar *entity.Avatar
	if avatar != nil {
		if u.Avatar != nil && u.Avatar.PublicID != "" {
			if err := s.Images.Destroy(ctx, u.Avatar.PublicID); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("public_id", u.Avatar.PublicID).Warn("old avatar delete failed")
			}
		}
		id, url, err := s.Images.Upload(ctx, avatar.Reader, avatar.Folder, avatar.Filename, avatar.ContentType)
		if err != nil {
			return nil, apperr.Dependency("failed to upload avatar", err)
		}
		newAvatar = &entity.Avatar{PublicID: id, URL: url}
	}

	updated, err := s.Repo.UpdateProfile(ctx, u.ID, name, email, newAvatar)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(apperr.ErrUserNotFound.Error())
		}
		return nil, apperr.Dependency("failed to update profile", err)
	}
	return updated, nil
}
