package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/models"
)

const cardColumns = `id::text, usuario_id::text, nome, bandeira, limite::text, data_fechamento, data_vencimento, created_at`

func (s *Store) ListCards(ctx context.Context, ownerID string) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cartoes WHERE usuario_id = $1 ORDER BY created_at DESC;`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]models.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, translate(rows.Err())
}

func (s *Store) CreateCard(ctx context.Context, c models.Card) (models.Card, error) {
	query := `
	INSERT INTO cartoes (id, usuario_id, nome, bandeira, limite, data_fechamento, data_vencimento)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + cardColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, newID(c.ID), c.OwnerID, c.Name, string(c.Network), c.Limit.String(), c.ClosingDay, c.DueDay)
	return scanCard(row)
}

func (s *Store) UpdateCard(ctx context.Context, c models.Card) (models.Card, error) {
	query := `
	UPDATE cartoes
	SET nome = $3, bandeira = $4, limite = $5, data_fechamento = $6, data_vencimento = $7
	WHERE id = $1 AND usuario_id = $2
	RETURNING ` + cardColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, c.ID, c.OwnerID, c.Name, string(c.Network), c.Limit.String(), c.ClosingDay, c.DueDay)
	return scanCard(row)
}

func (s *Store) GetCard(ctx context.Context, ownerID, id string) (models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cartoes WHERE id = $1 AND usuario_id = $2;`
	return scanCard(s.pool.QueryRow(ctx, query, id, ownerID))
}

// DeleteCard removes the card. Its statement rows cascade and linked
// expenses keep their history with cartao_id cleared.
func (s *Store) DeleteCard(ctx context.Context, ownerID, id string) error {
	return s.deleteOwned(ctx, `DELETE FROM cartoes WHERE id = $1 AND usuario_id = $2;`, ownerID, id)
}

func scanCard(row pgx.Row) (models.Card, error) {
	var (
		c     models.Card
		limit string
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Network, &limit, &c.ClosingDay, &c.DueDay, &c.CreatedAt); err != nil {
		return models.Card{}, translate(err)
	}
	var err error
	if c.Limit, err = models.ParseAmount(limit); err != nil {
		return models.Card{}, err
	}
	return c, nil
}
