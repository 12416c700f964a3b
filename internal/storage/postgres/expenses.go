package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
)

const expenseColumns = `d.id::text, d.usuario_id::text, d.valor::text, d.tipo, d.data_despesa, d.tipo_pagamento,
	d.cartao_id::text, d.parcelas, d.descricao, d.local, d.created_at, c.nome`

// ListExpenses returns the owner's expenses inside the range, newest first,
// with the linked card name.
func (s *Store) ListExpenses(ctx context.Context, ownerID string, r daterange.Range) ([]models.Expense, error) {
	query := `
	SELECT ` + expenseColumns + `
	FROM despesas d
	LEFT JOIN cartoes c ON c.id = d.cartao_id
	WHERE d.usuario_id = $1
		AND ($2::date IS NULL OR d.data_despesa >= $2::date)
		AND ($3::date IS NULL OR d.data_despesa <= $3::date)
	ORDER BY d.data_despesa DESC, d.created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query, ownerID, dateArg(r.From), dateArg(r.To))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

// CreateExpense inserts the expense and its installment batch in one
// transaction. A replayed batch is ignored by the (despesa_id, parcela_numero)
// unique index.
func (s *Store) CreateExpense(ctx context.Context, e models.Expense, installments []models.Installment) (models.Expense, error) {
	e.ID = newID(e.ID)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Expense{}, fmt.Errorf("begin expense tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
	INSERT INTO despesas (id, usuario_id, valor, tipo, data_despesa, tipo_pagamento, cartao_id, parcelas, descricao, local)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, insert, e.ID, e.OwnerID, e.Amount.String(), string(e.Category), e.SpentOn.String(),
		string(e.PaymentMethod), e.CardID, e.Installments, e.Description, e.Location); err != nil {
		return models.Expense{}, translate(err)
	}

	if len(installments) > 0 {
		const insertRow = `
		INSERT INTO extrato_cartao (id, usuario_id, cartao_id, despesa_id, parcela_numero, total_parcelas, valor, data_vencimento, pago, descricao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9)
		ON CONFLICT (despesa_id, parcela_numero) DO NOTHING;
		`
		batch := &pgx.Batch{}
		for _, in := range installments {
			batch.Queue(insertRow, newID(in.ID), in.OwnerID, in.CardID, e.ID, in.Number, in.Total,
				in.Amount.String(), in.DueOn.String(), in.Description)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return models.Expense{}, fmt.Errorf("insert installments: %w", translate(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Expense{}, fmt.Errorf("commit expense tx: %w", err)
	}
	return s.GetExpense(ctx, e.OwnerID, e.ID)
}

// UpdateExpense rewrites the expense columns. Installment rows already
// generated are left as they are.
func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	const query = `
	UPDATE despesas
	SET valor = $3, tipo = $4, data_despesa = $5, tipo_pagamento = $6, cartao_id = $7, parcelas = $8, descricao = $9, local = $10
	WHERE id = $1 AND usuario_id = $2;
	`
	tag, err := s.pool.Exec(ctx, query, e.ID, e.OwnerID, e.Amount.String(), string(e.Category), e.SpentOn.String(),
		string(e.PaymentMethod), e.CardID, e.Installments, e.Description, e.Location)
	if err != nil {
		return models.Expense{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Expense{}, translate(pgx.ErrNoRows)
	}
	return s.GetExpense(ctx, e.OwnerID, e.ID)
}

// GetExpense fetches one owned expense with its card name.
func (s *Store) GetExpense(ctx context.Context, ownerID, id string) (models.Expense, error) {
	query := `
	SELECT ` + expenseColumns + `
	FROM despesas d
	LEFT JOIN cartoes c ON c.id = d.cartao_id
	WHERE d.id = $1 AND d.usuario_id = $2;
	`
	return scanExpense(s.pool.QueryRow(ctx, query, id, ownerID))
}

// DeleteExpense removes one owned expense; its installments cascade.
func (s *Store) DeleteExpense(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, `DELETE FROM despesas WHERE id = $1 AND usuario_id = $2;`, ownerID, id)
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var (
		e        models.Expense
		amount   string
		on       time.Time
		cardName *string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &amount, &e.Category, &on, &e.PaymentMethod,
		&e.CardID, &e.Installments, &e.Description, &e.Location, &e.CreatedAt, &cardName); err != nil {
		return models.Expense{}, translate(err)
	}
	var err error
	if e.Amount, err = models.ParseAmount(amount); err != nil {
		return models.Expense{}, err
	}
	e.SpentOn = dateFrom(on)
	if cardName != nil {
		e.Card = &models.CardRef{Name: *cardName}
	}
	return e, nil
}
