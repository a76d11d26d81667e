package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

// ErrMissingOpenID rejects user upserts without an external identity.
var ErrMissingOpenID = errors.New("user open_id is required for upsert")

type userRepository struct {
	BaseRepository
	ownerOpenID string
}

// NewUserRepository creates the user store. ownerOpenID, when non-empty,
// is the external identity auto-promoted to admin on sign-in.
func NewUserRepository(db *sqlx.DB, ownerOpenID string) repository.UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db), ownerOpenID: ownerOpenID}
}

// resolveRole keeps an explicit role as-is; without one, the configured
// owner identity is promoted to admin and everyone else keeps whatever
// role the row already has (NULL inserts default to 'user').
func resolveRole(role *model.UserRole, openID, ownerOpenID string) *model.UserRole {
	if role == nil && ownerOpenID != "" && openID == ownerOpenID {
		admin := model.UserRoleAdmin
		return &admin
	}
	return role
}

func (r *userRepository) Upsert(ctx context.Context, user *model.UpsertUser) error {
	if user == nil || user.OpenID == "" {
		return ErrMissingOpenID
	}
	if !r.Available() {
		return ErrStoreUnavailable
	}

	role := resolveRole(user.Role, user.OpenID, r.ownerOpenID)

	lastSignedIn := time.Now()
	if user.LastSignedIn != nil {
		lastSignedIn = *user.LastSignedIn
	}

	query := `
		INSERT INTO users (open_id, name, email, phone, login_method, role, last_signed_in, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, 'user'), $7, NOW(), NOW())
		ON CONFLICT (open_id) DO UPDATE SET
			name           = COALESCE(EXCLUDED.name, users.name),
			email          = COALESCE(EXCLUDED.email, users.email),
			phone          = COALESCE(EXCLUDED.phone, users.phone),
			login_method   = COALESCE(EXCLUDED.login_method, users.login_method),
			role           = COALESCE($6, users.role),
			last_signed_in = EXCLUDED.last_signed_in,
			updated_at     = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		user.OpenID,
		user.Name,
		user.Email,
		user.Phone,
		user.LoginMethod,
		role,
		lastSignedIn,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	if !r.Available() {
		return nil, nil
	}

	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE open_id = $1`, openID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by open_id: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if !r.Available() {
		return nil, nil
	}

	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	if !r.Available() {
		return 0, nil
	}

	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE last_signed_in >= $1`, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}
