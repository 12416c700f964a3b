package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
)

const installmentColumns = `id::text, usuario_id::text, cartao_id::text, despesa_id::text, parcela_numero, total_parcelas,
	valor::text, data_vencimento, pago, data_pagamento, descricao, created_at, updated_at`

// ListInstallments returns one card's statement ordered by due date.
func (s *Store) ListInstallments(ctx context.Context, ownerID, cardID string, r daterange.Range) ([]models.Installment, error) {
	query := `
	SELECT ` + installmentColumns + `
	FROM extrato_cartao
	WHERE usuario_id = $1 AND cartao_id = $2
		AND ($3::date IS NULL OR data_vencimento >= $3::date)
		AND ($4::date IS NULL OR data_vencimento <= $4::date)
	ORDER BY data_vencimento ASC, despesa_id, parcela_numero;
	`
	rows, err := s.pool.Query(ctx, query, ownerID, cardID, dateArg(r.From), dateArg(r.To))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]models.Installment, 0)
	for rows.Next() {
		in, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, translate(rows.Err())
}

// SetInstallmentPaid flips the paid flag of one owned row.
func (s *Store) SetInstallmentPaid(ctx context.Context, ownerID, id string, paid bool, paidOn *daterange.Date, at time.Time) (models.Installment, error) {
	query := `
	UPDATE extrato_cartao
	SET pago = $3, data_pagamento = $4::date, updated_at = $5
	WHERE id = $1 AND usuario_id = $2
	RETURNING ` + installmentColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, id, ownerID, paid, dateArg(paidOn), at)
	return scanInstallment(row)
}

func scanInstallment(row pgx.Row) (models.Installment, error) {
	var (
		in     models.Installment
		amount string
		due    time.Time
		paidOn *time.Time
	)
	if err := row.Scan(&in.ID, &in.OwnerID, &in.CardID, &in.ExpenseID, &in.Number, &in.Total,
		&amount, &due, &in.Paid, &paidOn, &in.Description, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return models.Installment{}, translate(err)
	}
	var err error
	if in.Amount, err = models.ParseAmount(amount); err != nil {
		return models.Installment{}, err
	}
	in.DueOn = dateFrom(due)
	in.PaidOn = optionalDate(paidOn)
	return in, nil
}
