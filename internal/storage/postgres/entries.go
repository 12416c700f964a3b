package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

const entryColumns = `id::text, usuario_id::text, valor::text, tipo, data_entrada, forma_recebimento, descricao, created_at`

// ListEntries returns the owner's entries inside the range, newest first.
func (s *Store) ListEntries(ctx context.Context, ownerID string, r daterange.Range) ([]models.Entry, error) {
	query := `
	SELECT ` + entryColumns + `
	FROM entradas
	WHERE usuario_id = $1
		AND ($2::date IS NULL OR data_entrada >= $2::date)
		AND ($3::date IS NULL OR data_entrada <= $3::date)
	ORDER BY data_entrada DESC, created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query, ownerID, dateArg(r.From), dateArg(r.To))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

// CreateEntry inserts a new entry row.
func (s *Store) CreateEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	query := `
	INSERT INTO entradas (id, usuario_id, valor, tipo, data_entrada, forma_recebimento, descricao)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + entryColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, newID(e.ID), e.OwnerID, e.Amount.String(), string(e.Category),
		e.ReceivedOn.String(), string(e.ReceiptMethod), e.Description)
	return scanEntry(row)
}

// UpdateEntry rewrites every mutable column of an owned entry.
func (s *Store) UpdateEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	query := `
	UPDATE entradas
	SET valor = $3, tipo = $4, data_entrada = $5, forma_recebimento = $6, descricao = $7
	WHERE id = $1 AND usuario_id = $2
	RETURNING ` + entryColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, e.ID, e.OwnerID, e.Amount.String(), string(e.Category),
		e.ReceivedOn.String(), string(e.ReceiptMethod), e.Description)
	return scanEntry(row)
}

// GetEntry fetches one owned entry.
func (s *Store) GetEntry(ctx context.Context, ownerID, id string) (models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entradas WHERE id = $1 AND usuario_id = $2;`
	return scanEntry(s.pool.QueryRow(ctx, query, id, ownerID))
}

// DeleteEntry removes one owned entry.
func (s *Store) DeleteEntry(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, `DELETE FROM entradas WHERE id = $1 AND usuario_id = $2;`, ownerID, id)
}

func (s *Store) deleteOwned(ctx context.Context, query, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (models.Entry, error) {
	var (
		e      models.Entry
		amount string
		on     time.Time
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &amount, &e.Category, &on, &e.ReceiptMethod, &e.Description, &e.CreatedAt); err != nil {
		return models.Entry{}, translate(err)
	}
	var err error
	if e.Amount, err = models.ParseAmount(amount); err != nil {
		return models.Entry{}, err
	}
	e.ReceivedOn = dateFrom(on)
	return e, nil
}
