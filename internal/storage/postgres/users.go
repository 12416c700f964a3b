package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

const userColumns = `id::text, email, nome, stripe_customer_id, subscription_status, subscription_id, created_at, updated_at`

// CreateUser inserts the profile row for a freshly registered identity.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	status := u.SubscriptionStatus
	if status == "" {
		status = models.SubscriptionTrialing
	}
	var createdAt any
	if !u.CreatedAt.IsZero() {
		createdAt = u.CreatedAt
	}
	query := `
	INSERT INTO usuarios (id, email, nome, subscription_status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, NOW()), NOW())
	RETURNING ` + userColumns + `;
	`
	return scanUser(s.pool.QueryRow(ctx, query, u.ID, u.Email, u.Name, string(status), createdAt))
}

// GetUser fetches a profile by identity id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// SetBillingCustomer links a billing customer to the profile.
func (s *Store) SetBillingCustomer(ctx context.Context, userID, customerID string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE usuarios SET stripe_customer_id = $2, updated_at = $3 WHERE id = $1;`,
		userID, customerID, at)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateSubscriptionByCustomer applies a billing status to every profile
// linked to the customer. A nil subscription id keeps the stored one.
func (s *Store) UpdateSubscriptionByCustomer(ctx context.Context, customerID string, status models.SubscriptionStatus, subscriptionID *string, at time.Time) (int64, error) {
	const query = `
	UPDATE usuarios
	SET subscription_status = $2, subscription_id = COALESCE($3, subscription_id), updated_at = $4
	WHERE stripe_customer_id = $1;
	`
	tag, err := s.pool.Exec(ctx, query, customerID, string(status), subscriptionID, at)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

// CreateCredential stores a local login. Emails are unique case-insensitively.
func (s *Store) CreateCredential(ctx context.Context, c models.Credential) error {
	const query = `
	INSERT INTO credenciais (usuario_id, email, nome, password_hash, created_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err := s.pool.Exec(ctx, query, c.UserID, strings.ToLower(c.Email), c.Name, c.PasswordHash, c.CreatedAt)
	return translate(err)
}

// FindCredentialByEmail fetches a local login.
func (s *Store) FindCredentialByEmail(ctx context.Context, email string) (models.Credential, error) {
	const query = `
	SELECT usuario_id::text, email, nome, password_hash, created_at
	FROM credenciais
	WHERE email = $1;
	`
	var c models.Credential
	err := s.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&c.UserID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return models.Credential{}, translate(err)
	}
	return c, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.BillingCustomerID, &u.SubscriptionStatus,
		&u.SubscriptionID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}
