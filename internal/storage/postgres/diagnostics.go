package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/financas-be/internal/models"
	"github.com/hongminglow/financas-be/internal/storage"
)

// Diagnose probes every application table. Failures are reported per table
// instead of aborting the whole report.
func (s *Store) Diagnose(ctx context.Context) []models.TableStatus {
	out := make([]models.TableStatus, 0, len(storage.Tables))
	for _, name := range storage.Tables {
		out = append(out, s.diagnoseTable(ctx, name))
	}
	return out
}

func (s *Store) diagnoseTable(ctx context.Context, name string) models.TableStatus {
	st := models.TableStatus{Name: name, Columns: []string{}}

	const columnsQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1
	ORDER BY ordinal_position;
	`
	rows, err := s.pool.Query(ctx, columnsQuery, name)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	cols, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		st.Error = err.Error()
		return st
	}
	if len(cols) == 0 {
		st.Error = fmt.Sprintf("relation %q does not exist", name)
		return st
	}
	st.Exists = true
	st.Columns = cols

	// name comes from storage.Tables, never from a request
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+pgx.Identifier{name}.Sanitize()).Scan(&st.Rows); err != nil {
		st.Error = err.Error()
	}
	return st
}
