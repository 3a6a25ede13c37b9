package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, public_key, encrypted_private_key, signin_challenge,
	token_valid_from, two_factor_secret, two_factor_enabled, two_factor_checked,
	created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PublicKey, u.EncryptedPrivateKey, u.SigninChallenge,
		u.TokenValidFrom, mapOptionalString(u.TwoFactorSecret), u.TwoFactorEnabled,
		u.TwoFactorChecked, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapConstraint(err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO usernames (username, user_id) VALUES (?, ?)`,
		u.Username, u.ID,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.public_key, u.encrypted_private_key, u.signin_challenge,
			u.token_valid_from, u.two_factor_secret, u.two_factor_enabled, u.two_factor_checked,
			u.created_at, u.updated_at
		FROM usernames n
		JOIN users u ON u.id = n.user_id
		WHERE n.username = ?`, username)
	return scanUser(row)
}

// ConsumeSigninChallenge is the serialisation point for signin: the UPDATE
// only lands when the stored challenge still equals the presented value, so
// two racing signins with the same proof cannot both succeed.
func (r *usersRepo) ConsumeSigninChallenge(ctx context.Context, userID, presented, next string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET signin_challenge = ?, updated_at = ?
		WHERE id = ? AND signin_challenge = ?`,
		next, time.Now().UTC(), userID, presented,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *usersRepo) UpdateEncryptedPrivateKey(ctx context.Context, userID, encryptedKey string) error {
	return r.exec(ctx, `
		UPDATE users SET encrypted_private_key = ?, updated_at = ? WHERE id = ?`,
		encryptedKey, time.Now().UTC(), userID)
}

func (r *usersRepo) SetTokenValidFrom(ctx context.Context, userID string, t time.Time) error {
	return r.exec(ctx, `
		UPDATE users SET token_valid_from = ?, updated_at = ? WHERE id = ?`,
		t.UTC(), time.Now().UTC(), userID)
}

func (r *usersRepo) UpdateTwoFactorSecret(ctx context.Context, userID string, encrypted *string) error {
	return r.exec(ctx, `
		UPDATE users SET two_factor_secret = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(encrypted), time.Now().UTC(), userID)
}

func (r *usersRepo) SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.exec(ctx, `
		UPDATE users SET two_factor_enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, time.Now().UTC(), userID)
}

func (r *usersRepo) SetTwoFactorChecked(ctx context.Context, userID string, checked bool) error {
	return r.exec(ctx, `
		UPDATE users SET two_factor_checked = ?, updated_at = ? WHERE id = ?`,
		checked, time.Now().UTC(), userID)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
}

// exec runs an UPDATE/DELETE that must touch exactly one row, mapping a zero
// row count to ErrNotFound.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u      domain.User
		secret sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PublicKey, &u.EncryptedPrivateKey, &u.SigninChallenge,
		&u.TokenValidFrom, &secret, &u.TwoFactorEnabled, &u.TwoFactorChecked,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.TwoFactorSecret = mapNullStringPtr(secret)
	return u, nil
}
