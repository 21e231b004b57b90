package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the minimum accepted password length at sign-up.
const MinPasswordLen = 6

var (
	// ErrUserExists is returned when signing up with a taken email.
	ErrUserExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when no account matches the email.
	ErrUserNotFound = errors.New("no account found with this email")
)

// User is a local account. Passwords are stored only as bcrypt hashes.
type User struct {
	Email     string
	Name      string
	CreatedAt time.Time
}

// UserRepo manages local accounts and the current-user marker.
type UserRepo interface {
	// Create registers a new account. The email is normalized to
	// lower case; the password must be at least MinPasswordLen runes.
	Create(ctx context.Context, name, email, password string) (*User, error)

	// Authenticate checks the credentials and returns the account.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// Delete removes the account, its attempt history, and its
	// last-result slot. If the account is the current user the marker
	// is cleared too. This backs the forgot-password flow: the
	// account is cleared so the email can sign up again.
	Delete(ctx context.Context, email string) error

	// Current returns the signed-in account, or nil when signed out.
	Current(ctx context.Context) (*User, error)

	// SetCurrent marks the account as signed in.
	SetCurrent(ctx context.Context, email string) error

	// ClearCurrent signs out.
	ClearCurrent(ctx context.Context) error
}

const currentUserKey = "current_user"

type userRepo struct {
	db *sql.DB
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepo) Create(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if len([]rune(password)) < MinPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{Email: email, Name: name, CreatedAt: time.Now().UTC()}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.Email, u.Name, string(hash), u.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *userRepo) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	var (
		u         User
		hash      string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT email, name, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.Email, &u.Name, &hash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

func (r *userRepo) Delete(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM attempts WHERE email = ?`, email); err != nil {
		return fmt.Errorf("delete attempts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, lastResultKey(email)); err != nil {
		return fmt.Errorf("delete last result: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ? AND value = ?`, currentUserKey, email); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}

	return tx.Commit()
}

func (r *userRepo) Current(ctx context.Context) (*User, error) {
	var email string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, currentUserKey).Scan(&email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query current user: %w", err)
	}

	var (
		u         User
		createdAt int64
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT email, name, created_at FROM users WHERE email = ?`, email).
		Scan(&u.Email, &u.Name, &createdAt)
	if err == sql.ErrNoRows {
		// Stale marker; treat as signed out.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}

func (r *userRepo) SetCurrent(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentUserKey, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

func (r *userRepo) ClearCurrent(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ?`, currentUserKey); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
