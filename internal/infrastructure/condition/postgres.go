package condition

import (
	"context"

	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresCondition проверяет наличие неотозванной записи в таблице verified_conditions.
type PostgresCondition struct {
	db rowQuerier
}

func NewPostgresCondition(db rowQuerier) *PostgresCondition {
	return &PostgresCondition{db: db}
}

func (p *PostgresCondition) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM verified_conditions
			WHERE param = $1
			  AND revoked_at IS NULL
		)
	`

	var exists bool
	if err := p.db.QueryRow(ctx, query, param).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}
