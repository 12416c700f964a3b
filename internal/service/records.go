// Package service holds the request-independent business logic: owner-scoped
// record handling, account registration and subscription sync.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/financas-be/internal/aggregate"
	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/installment"
	"github.com/hongminglow/financas-be/internal/metrics"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/models/dto"
	"github.com/hongminglow/financas-be/internal/storage"
)

// MaxInstallments caps the number of monthly rows one purchase may spawn.
const MaxInstallments = 120

// RecordStore is the slice of the store the record service needs.
type RecordStore interface {
	storage.EntryStore
	storage.ExpenseStore
	storage.CardStore
	storage.InstallmentStore
}

// Records implements owner-scoped CRUD. Every method takes the
// authenticated owner id; rows of other owners are reported as not found.
type Records struct {
	store   RecordStore
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

func NewRecords(store RecordStore, m *metrics.Metrics, logger *slog.Logger) *Records {
	return &Records{store: store, metrics: m, logger: logger, now: time.Now}
}

func (s *Records) resolve(q daterange.Query) (daterange.Range, error) {
	r, err := daterange.Resolve(q, s.now())
	if err != nil {
		return daterange.Range{}, &ValidationError{Message: err.Error()}
	}
	return r, nil
}

// Entries

func (s *Records) ListEntries(ctx context.Context, ownerID string, q daterange.Query) ([]models.Entry, error) {
	r, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, ownerID, r)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *Records) CreateEntry(ctx context.Context, ownerID string, in dto.EntryInput) (models.Entry, error) {
	e := models.Entry{OwnerID: ownerID}
	applyEntry(&e, in)
	if err := validateEntry(e); err != nil {
		return models.Entry{}, err
	}
	e.ID = uuid.NewString()

	created, err := s.store.CreateEntry(ctx, e)
	if err != nil {
		return models.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return created, nil
}

func (s *Records) GetEntry(ctx context.Context, ownerID, id string) (models.Entry, error) {
	if !validID(id) {
		return models.Entry{}, storage.ErrNotFound
	}
	return s.store.GetEntry(ctx, ownerID, id)
}

func (s *Records) UpdateEntry(ctx context.Context, ownerID, id string, in dto.EntryInput) (models.Entry, error) {
	if !validID(id) {
		return models.Entry{}, storage.ErrNotFound
	}
	e, err := s.store.GetEntry(ctx, ownerID, id)
	if err != nil {
		return models.Entry{}, err
	}
	applyEntry(&e, in)
	if err := validateEntry(e); err != nil {
		return models.Entry{}, err
	}
	return s.store.UpdateEntry(ctx, e)
}

func (s *Records) DeleteEntry(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return storage.ErrNotFound
	}
	return s.store.DeleteEntry(ctx, ownerID, id)
}

func applyEntry(e *models.Entry, in dto.EntryInput) {
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = models.IncomeCategory(strings.TrimSpace(*in.Category))
	}
	if in.ReceivedOn != nil {
		e.ReceivedOn = *in.ReceivedOn
	}
	if in.ReceiptMethod != nil {
		e.ReceiptMethod = models.ReceiptMethod(strings.TrimSpace(*in.ReceiptMethod))
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
}

func validateEntry(e models.Entry) error {
	if e.Amount.IsNegative() {
		return invalid("valor", "must not be negative")
	}
	if err := checkCents("valor", e.Amount); err != nil {
		return err
	}
	if e.Category == "" {
		return invalid("tipo", "is required")
	}
	if e.ReceivedOn.IsZero() {
		return invalid("data_entrada", "is required")
	}
	return nil
}

// Expenses

func (s *Records) ListExpenses(ctx context.Context, ownerID string, q daterange.Query) ([]models.Expense, error) {
	r, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, ownerID, r)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// CreateExpense stores the expense and, for a credit purchase on a card in
// more than one installment, its whole monthly schedule.
func (s *Records) CreateExpense(ctx context.Context, ownerID string, in dto.ExpenseInput) (models.Expense, error) {
	e := models.Expense{OwnerID: ownerID, Installments: 1}
	applyExpense(&e, in)
	if err := validateExpense(e); err != nil {
		return models.Expense{}, err
	}
	if err := s.checkCard(ctx, ownerID, e.CardID); err != nil {
		return models.Expense{}, err
	}
	e.ID = uuid.NewString()

	var rows []models.Installment
	if e.IsInstallmentPurchase() {
		var err error
		if rows, err = installment.Schedule(e); err != nil {
			return models.Expense{}, err
		}
	}

	created, err := s.store.CreateExpense(ctx, e, rows)
	if err != nil {
		return models.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	if len(rows) > 0 {
		s.metrics.InstallmentsCreated(len(rows))
		s.logger.InfoContext(ctx, "installments scheduled",
			"expense_id", created.ID,
			"card_id", *e.CardID,
			"count", len(rows),
			"first_due", rows[0].DueOn.String(),
		)
	}
	return created, nil
}

func (s *Records) GetExpense(ctx context.Context, ownerID, id string) (models.Expense, error) {
	if !validID(id) {
		return models.Expense{}, storage.ErrNotFound
	}
	return s.store.GetExpense(ctx, ownerID, id)
}

// UpdateExpense changes the expense row only. The installment schedule is
// generated once at creation and is not rebuilt.
func (s *Records) UpdateExpense(ctx context.Context, ownerID, id string, in dto.ExpenseInput) (models.Expense, error) {
	if !validID(id) {
		return models.Expense{}, storage.ErrNotFound
	}
	e, err := s.store.GetExpense(ctx, ownerID, id)
	if err != nil {
		return models.Expense{}, err
	}
	applyExpense(&e, in)
	if err := validateExpense(e); err != nil {
		return models.Expense{}, err
	}
	if in.CardID != nil {
		if err := s.checkCard(ctx, ownerID, e.CardID); err != nil {
			return models.Expense{}, err
		}
	}
	return s.store.UpdateExpense(ctx, e)
}

func (s *Records) DeleteExpense(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return storage.ErrNotFound
	}
	return s.store.DeleteExpense(ctx, ownerID, id)
}

// checkCard makes sure a referenced card belongs to the owner.
func (s *Records) checkCard(ctx context.Context, ownerID string, cardID *string) error {
	if cardID == nil {
		return nil
	}
	if !validID(*cardID) {
		return invalid("cartao_id", "card not found")
	}
	if _, err := s.store.GetCard(ctx, ownerID, *cardID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalid("cartao_id", "card not found")
		}
		return fmt.Errorf("get card: %w", err)
	}
	return nil
}

func applyExpense(e *models.Expense, in dto.ExpenseInput) {
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = models.ExpenseCategory(strings.TrimSpace(*in.Category))
	}
	if in.SpentOn != nil {
		e.SpentOn = *in.SpentOn
	}
	if in.PaymentMethod != nil {
		e.PaymentMethod = models.PaymentMethod(strings.TrimSpace(*in.PaymentMethod))
	}
	if in.CardID != nil {
		if id := strings.TrimSpace(*in.CardID); id != "" {
			e.CardID = &id
		} else {
			e.CardID = nil
		}
	}
	if in.Installments != nil {
		e.Installments = *in.Installments
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	// Leaving credit without naming a card drops the old link.
	if e.PaymentMethod != models.PaymentCredit && in.CardID == nil {
		e.CardID = nil
	}
	e.Card = nil
}

func validateExpense(e models.Expense) error {
	if !e.Amount.IsPositive() {
		return invalid("valor", "must be greater than zero")
	}
	if err := checkCents("valor", e.Amount); err != nil {
		return err
	}
	if e.Category == "" {
		return invalid("tipo", "is required")
	}
	if e.SpentOn.IsZero() {
		return invalid("data_despesa", "is required")
	}
	if !e.PaymentMethod.Valid() {
		return invalid("tipo_pagamento", "unknown payment method %q", e.PaymentMethod)
	}
	if e.Installments < 1 || e.Installments > MaxInstallments {
		return invalid("parcelas", "must be between 1 and %d", MaxInstallments)
	}
	switch {
	case e.PaymentMethod == models.PaymentCredit && e.CardID == nil:
		return invalid("cartao_id", "is required for credit")
	case e.PaymentMethod != models.PaymentCredit && e.CardID != nil:
		return invalid("cartao_id", "is only allowed for credit")
	}
	return nil
}

// checkCents rejects sub-cent amounts, which the NUMERIC(14,2) columns
// would otherwise round away.
func checkCents(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(2)) {
		return invalid(field, "must have at most two decimal places")
	}
	return nil
}

// Cards

func (s *Records) ListCards(ctx context.Context, ownerID string) ([]models.Card, error) {
	cards, err := s.store.ListCards(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (s *Records) CreateCard(ctx context.Context, ownerID string, in dto.CardInput) (models.Card, error) {
	c := models.Card{OwnerID: ownerID, Limit: decimal.Zero}
	applyCard(&c, in)
	if err := validateCard(c); err != nil {
		return models.Card{}, err
	}
	c.ID = uuid.NewString()

	created, err := s.store.CreateCard(ctx, c)
	if err != nil {
		return models.Card{}, fmt.Errorf("create card: %w", err)
	}
	return created, nil
}

func (s *Records) GetCard(ctx context.Context, ownerID, id string) (models.Card, error) {
	if !validID(id) {
		return models.Card{}, storage.ErrNotFound
	}
	return s.store.GetCard(ctx, ownerID, id)
}

func (s *Records) UpdateCard(ctx context.Context, ownerID, id string, in dto.CardInput) (models.Card, error) {
	if !validID(id) {
		return models.Card{}, storage.ErrNotFound
	}
	c, err := s.store.GetCard(ctx, ownerID, id)
	if err != nil {
		return models.Card{}, err
	}
	applyCard(&c, in)
	if err := validateCard(c); err != nil {
		return models.Card{}, err
	}
	return s.store.UpdateCard(ctx, c)
}

func (s *Records) DeleteCard(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return storage.ErrNotFound
	}
	return s.store.DeleteCard(ctx, ownerID, id)
}

func applyCard(c *models.Card, in dto.CardInput) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Network != nil {
		c.Network = models.CardNetwork(strings.TrimSpace(*in.Network))
	}
	if in.Limit != nil {
		c.Limit = *in.Limit
	}
	if in.ClosingDay != nil {
		c.ClosingDay = *in.ClosingDay
	}
	if in.DueDay != nil {
		c.DueDay = *in.DueDay
	}
}

func validateCard(c models.Card) error {
	if c.Name == "" {
		return invalid("nome", "is required")
	}
	if c.Limit.IsNegative() {
		return invalid("limite", "must not be negative")
	}
	if err := checkCents("limite", c.Limit); err != nil {
		return err
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return invalid("data_fechamento", "must be a day between 1 and 31")
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return invalid("data_vencimento", "must be a day between 1 and 31")
	}
	return nil
}

// Card statement

// Statement lists a card's installment rows. Only explicit dates filter it;
// the named period presets do not apply to statements.
func (s *Records) Statement(ctx context.Context, ownerID, cardID string, q daterange.Query) ([]models.Installment, error) {
	r, err := daterange.Explicit(q)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if !validID(cardID) {
		return []models.Installment{}, nil
	}
	rows, err := s.store.ListInstallments(ctx, ownerID, cardID, r)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	return rows, nil
}

func (s *Records) StatementSummary(ctx context.Context, ownerID, cardID string, q daterange.Query) (aggregate.PaymentSummary, error) {
	rows, err := s.Statement(ctx, ownerID, cardID, q)
	if err != nil {
		return aggregate.PaymentSummary{}, err
	}
	return aggregate.SummarizePayments(rows), nil
}

// PayInstallment marks a row paid today on the civil calendar.
func (s *Records) PayInstallment(ctx context.Context, ownerID, id string) (models.Installment, error) {
	if !validID(id) {
		return models.Installment{}, storage.ErrNotFound
	}
	now := s.now()
	today := daterange.Today(now)
	return s.store.SetInstallmentPaid(ctx, ownerID, id, true, &today, now.UTC())
}

// UndoPayment clears the paid flag and payment date.
func (s *Records) UndoPayment(ctx context.Context, ownerID, id string) (models.Installment, error) {
	if !validID(id) {
		return models.Installment{}, storage.ErrNotFound
	}
	return s.store.SetInstallmentPaid(ctx, ownerID, id, false, nil, s.now().UTC())
}
