package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
)

// ErrNotFound indicates a record does not exist or is not owned by the caller.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Tables lists the application tables reported by Diagnose, in display order.
var Tables = []string{"usuarios", "entradas", "despesas", "cartoes", "extrato_cartao"}

// Every record operation takes the owner id and only ever touches rows of
// that owner. A row owned by someone else is reported as ErrNotFound.

// EntryStore persists income entries. Lists are ordered by date, newest first.
type EntryStore interface {
	ListEntries(ctx context.Context, ownerID string, r daterange.Range) ([]models.Entry, error)
	CreateEntry(ctx context.Context, e models.Entry) (models.Entry, error)
	UpdateEntry(ctx context.Context, e models.Entry) (models.Entry, error)
	GetEntry(ctx context.Context, ownerID, id string) (models.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, id string) error
}

// ExpenseStore persists expenses. Listed expenses carry the linked card name.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, ownerID string, r daterange.Range) ([]models.Expense, error)
	// CreateExpense stores the expense and its installment rows atomically.
	CreateExpense(ctx context.Context, e models.Expense, installments []models.Installment) (models.Expense, error)
	UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error)
	GetExpense(ctx context.Context, ownerID, id string) (models.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, id string) error
}

// CardStore persists cards, newest first.
type CardStore interface {
	ListCards(ctx context.Context, ownerID string) ([]models.Card, error)
	CreateCard(ctx context.Context, c models.Card) (models.Card, error)
	UpdateCard(ctx context.Context, c models.Card) (models.Card, error)
	GetCard(ctx context.Context, ownerID, id string) (models.Card, error)
	DeleteCard(ctx context.Context, ownerID, id string) error
}

// InstallmentStore reads card statements ordered by due date and flips the
// paid flag. Rows are otherwise immutable.
type InstallmentStore interface {
	ListInstallments(ctx context.Context, ownerID, cardID string, r daterange.Range) ([]models.Installment, error)
	SetInstallmentPaid(ctx context.Context, ownerID, id string, paid bool, paidOn *daterange.Date, at time.Time) (models.Installment, error)
}

// UserStore persists local profiles and their billing linkage.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	SetBillingCustomer(ctx context.Context, userID, customerID string, at time.Time) error
	// UpdateSubscriptionByCustomer returns the number of profiles changed.
	// subscriptionID nil keeps the stored reference.
	UpdateSubscriptionByCustomer(ctx context.Context, customerID string, status models.SubscriptionStatus, subscriptionID *string, at time.Time) (int64, error)
}

// CredentialStore persists logins for the built-in identity provider.
type CredentialStore interface {
	CreateCredential(ctx context.Context, c models.Credential) error
	FindCredentialByEmail(ctx context.Context, email string) (models.Credential, error)
}

// Store is the full record store used by the server.
type Store interface {
	EntryStore
	ExpenseStore
	CardStore
	InstallmentStore
	UserStore
	CredentialStore
	Diagnose(ctx context.Context) []models.TableStatus
	Close()
}
