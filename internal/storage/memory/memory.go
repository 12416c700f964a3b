// Package memory is a mutex-guarded in-process record store. It backs local
// development and the handler tests, mirroring the Postgres semantics.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every table in maps keyed by id.
type Store struct {
	mu sync.RWMutex

	users        map[string]models.User
	credentials  map[string]models.Credential // by lower-cased email
	entries      map[string]models.Entry
	expenses     map[string]models.Expense
	cards        map[string]models.Card
	installments map[string]models.Installment

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		credentials:  make(map[string]models.Credential),
		entries:      make(map[string]models.Entry),
		expenses:     make(map[string]models.Expense),
		cards:        make(map[string]models.Card),
		installments: make(map[string]models.Installment),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Close() {}

func (s *Store) stamp(id *string, created *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if created.IsZero() {
		*created = s.now()
	}
}

// Entries

func (s *Store) ListEntries(_ context.Context, ownerID string, r daterange.Range) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, 0)
	for _, e := range s.entries {
		if e.OwnerID == ownerID && r.Contains(e.ReceivedOn) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedOn.Equal(out[j].ReceivedOn) {
			return out[i].ReceivedOn.After(out[j].ReceivedOn)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateEntry(_ context.Context, e models.Entry) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&e.ID, &e.CreatedAt)
	if _, exists := s.entries[e.ID]; exists {
		return models.Entry{}, storage.ErrAlreadyExists
	}
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) UpdateEntry(_ context.Context, e models.Entry) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[e.ID]
	if !ok || cur.OwnerID != e.OwnerID {
		return models.Entry{}, storage.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) GetEntry(_ context.Context, ownerID, id string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.OwnerID != ownerID {
		return models.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) DeleteEntry(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// Expenses

func (s *Store) ListExpenses(_ context.Context, ownerID string, r daterange.Range) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Expense, 0)
	for _, e := range s.expenses {
		if e.OwnerID == ownerID && r.Contains(e.SpentOn) {
			out = append(out, s.withCard(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SpentOn.Equal(out[j].SpentOn) {
			return out[i].SpentOn.After(out[j].SpentOn)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) withCard(e models.Expense) models.Expense {
	e.Card = nil
	if e.CardID != nil {
		if c, ok := s.cards[*e.CardID]; ok {
			e.Card = &models.CardRef{Name: c.Name}
		}
	}
	return e
}

func (s *Store) CreateExpense(_ context.Context, e models.Expense, installments []models.Installment) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&e.ID, &e.CreatedAt)
	if _, exists := s.expenses[e.ID]; exists {
		return models.Expense{}, storage.ErrAlreadyExists
	}

	// validate the whole batch before touching any map
	rows := make([]models.Installment, len(installments))
	seen := make(map[int]bool, len(installments))
	for i, in := range installments {
		if in.ExpenseID != e.ID || seen[in.Number] {
			return models.Expense{}, storage.ErrAlreadyExists
		}
		seen[in.Number] = true
		s.stamp(&in.ID, &in.CreatedAt)
		in.UpdatedAt = in.CreatedAt
		rows[i] = in
	}

	e.Card = nil
	s.expenses[e.ID] = e
	for _, in := range rows {
		s.installments[in.ID] = in
	}
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e models.Expense) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.expenses[e.ID]
	if !ok || cur.OwnerID != e.OwnerID {
		return models.Expense{}, storage.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	e.Card = nil
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) GetExpense(_ context.Context, ownerID, id string) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return models.Expense{}, storage.ErrNotFound
	}
	return s.withCard(e), nil
}

// DeleteExpense removes the expense together with its installment rows.
func (s *Store) DeleteExpense(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.expenses, id)
	for key, in := range s.installments {
		if in.ExpenseID == id {
			delete(s.installments, key)
		}
	}
	return nil
}

// Cards

func (s *Store) ListCards(_ context.Context, ownerID string) ([]models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Card, 0)
	for _, c := range s.cards {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateCard(_ context.Context, c models.Card) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&c.ID, &c.CreatedAt)
	if _, exists := s.cards[c.ID]; exists {
		return models.Card{}, storage.ErrAlreadyExists
	}
	s.cards[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCard(_ context.Context, c models.Card) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.cards[c.ID]
	if !ok || cur.OwnerID != c.OwnerID {
		return models.Card{}, storage.ErrNotFound
	}
	c.CreatedAt = cur.CreatedAt
	s.cards[c.ID] = c
	return c, nil
}

func (s *Store) GetCard(_ context.Context, ownerID, id string) (models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards[id]
	if !ok || c.OwnerID != ownerID {
		return models.Card{}, storage.ErrNotFound
	}
	return c, nil
}

// DeleteCard drops the card and its statement; expenses keep their history
// with the card reference cleared.
func (s *Store) DeleteCard(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cards[id]
	if !ok || c.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.cards, id)
	for key, in := range s.installments {
		if in.CardID == id {
			delete(s.installments, key)
		}
	}
	for key, e := range s.expenses {
		if e.CardID != nil && *e.CardID == id {
			e.CardID = nil
			s.expenses[key] = e
		}
	}
	return nil
}

// Installments

func (s *Store) ListInstallments(_ context.Context, ownerID, cardID string, r daterange.Range) ([]models.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Installment, 0)
	for _, in := range s.installments {
		if in.OwnerID == ownerID && in.CardID == cardID && r.Contains(in.DueOn) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueOn.Equal(out[j].DueOn) {
			return out[i].DueOn.Before(out[j].DueOn)
		}
		if out[i].ExpenseID != out[j].ExpenseID {
			return out[i].ExpenseID < out[j].ExpenseID
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (s *Store) SetInstallmentPaid(_ context.Context, ownerID, id string, paid bool, paidOn *daterange.Date, at time.Time) (models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.installments[id]
	if !ok || in.OwnerID != ownerID {
		return models.Installment{}, storage.ErrNotFound
	}
	in.Paid = paid
	in.PaidOn = paidOn
	in.UpdatedAt = at
	s.installments[id] = in
	return in, nil
}

// Users

func (s *Store) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return models.User{}, storage.ErrAlreadyExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = models.SubscriptionTrialing
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) SetBillingCustomer(_ context.Context, userID, customerID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.BillingCustomerID = &customerID
	u.UpdatedAt = at
	s.users[userID] = u
	return nil
}

func (s *Store) UpdateSubscriptionByCustomer(_ context.Context, customerID string, status models.SubscriptionStatus, subscriptionID *string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, u := range s.users {
		if u.BillingCustomerID == nil || *u.BillingCustomerID != customerID {
			continue
		}
		u.SubscriptionStatus = status
		if subscriptionID != nil {
			sub := *subscriptionID
			u.SubscriptionID = &sub
		}
		u.UpdatedAt = at
		s.users[id] = u
		n++
	}
	return n, nil
}

// Credentials

func (s *Store) CreateCredential(_ context.Context, c models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(c.Email)
	if _, exists := s.credentials[key]; exists {
		return storage.ErrAlreadyExists
	}
	s.credentials[key] = c
	return nil
}

func (s *Store) FindCredentialByEmail(_ context.Context, email string) (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.credentials[strings.ToLower(email)]
	if !ok {
		return models.Credential{}, storage.ErrNotFound
	}
	return c, nil
}

var columns = map[string][]string{
	"usuarios":       {"id", "email", "nome", "stripe_customer_id", "subscription_status", "subscription_id", "created_at", "updated_at"},
	"entradas":       {"id", "usuario_id", "valor", "tipo", "data_entrada", "forma_recebimento", "descricao", "created_at"},
	"despesas":       {"id", "usuario_id", "valor", "tipo", "data_despesa", "tipo_pagamento", "cartao_id", "parcelas", "descricao", "local", "created_at"},
	"cartoes":        {"id", "usuario_id", "nome", "bandeira", "limite", "data_fechamento", "data_vencimento", "created_at"},
	"extrato_cartao": {"id", "usuario_id", "cartao_id", "despesa_id", "parcela_numero", "total_parcelas", "valor", "data_vencimento", "pago", "data_pagamento", "descricao", "created_at", "updated_at"},
}

// Diagnose reports every table as present with its current row count.
func (s *Store) Diagnose(_ context.Context) []models.TableStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{
		"usuarios":       len(s.users),
		"entradas":       len(s.entries),
		"despesas":       len(s.expenses),
		"cartoes":        len(s.cards),
		"extrato_cartao": len(s.installments),
	}
	out := make([]models.TableStatus, 0, len(storage.Tables))
	for _, name := range storage.Tables {
		out = append(out, models.TableStatus{
			Name:    name,
			Exists:  true,
			Rows:    int64(counts[name]),
			Columns: append([]string(nil), columns[name]...),
		})
	}
	return out
}
