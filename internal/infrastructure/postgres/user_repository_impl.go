package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/ecommerce-backend/internal/domain/repository"
)

const userColumns = `id, name, email, password, role, avatar,
	reset_password_token, reset_password_expire, otp_code, otp_expire,
	is_verified, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var avatar []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &avatar,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.OTPCode, &u.OTPExpire,
		&u.IsVerified, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	if len(avatar) > 0 {
		a := &entity.Avatar{}
		if err := json.Unmarshal(avatar, a); err != nil {
			return nil, err
		}
		u.Avatar = a
	}
	return u, nil
}

func avatarJSON(a *entity.Avatar) (any, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Password, u.Role)

	return row.Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > NOW()
	`, hashedToken))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password = $1 WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, hashedToken string, expiresAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2
		WHERE id = $3
	`, hashedToken, expiresAt, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_password_token = NULL, reset_password_expire = NULL
		WHERE id = $1
	`, id)
	return err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string, avatar *entity.Avatar) (*entity.User, error) {
	av, err := avatarJSON(avatar)
	if err != nil {
		return nil, err
	}
	// COALESCE keeps the stored avatar when none was uploaded.
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, email = $2, avatar = COALESCE($3, avatar)
		WHERE id = $4
		RETURNING `+userColumns+`
	`, name, email, av, id))
}

var _ repo.UserRepository = (*UserRepository)(nil)
