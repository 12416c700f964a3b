package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for every table.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL,
			nome TEXT NOT NULL DEFAULT '',
			stripe_customer_id TEXT UNIQUE,
			subscription_status TEXT NOT NULL DEFAULT 'trialing',
			subscription_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS credenciais (
			usuario_id UUID PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			nome TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS entradas (
			id UUID PRIMARY KEY,
			usuario_id UUID NOT NULL,
			valor NUMERIC(14,2) NOT NULL,
			tipo TEXT NOT NULL,
			data_entrada DATE NOT NULL,
			forma_recebimento TEXT NOT NULL DEFAULT '',
			descricao TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS entradas_usuario_data_idx ON entradas (usuario_id, data_entrada DESC);`,
		`CREATE TABLE IF NOT EXISTS cartoes (
			id UUID PRIMARY KEY,
			usuario_id UUID NOT NULL,
			nome TEXT NOT NULL,
			bandeira TEXT NOT NULL DEFAULT '',
			limite NUMERIC(14,2) NOT NULL DEFAULT 0,
			data_fechamento INT NOT NULL DEFAULT 1,
			data_vencimento INT NOT NULL DEFAULT 10,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS despesas (
			id UUID PRIMARY KEY,
			usuario_id UUID NOT NULL,
			valor NUMERIC(14,2) NOT NULL,
			tipo TEXT NOT NULL,
			data_despesa DATE NOT NULL,
			tipo_pagamento TEXT NOT NULL,
			cartao_id UUID REFERENCES cartoes(id) ON DELETE SET NULL,
			parcelas INT NOT NULL DEFAULT 1,
			descricao TEXT NOT NULL DEFAULT '',
			local TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS despesas_usuario_data_idx ON despesas (usuario_id, data_despesa DESC);`,
		`CREATE TABLE IF NOT EXISTS extrato_cartao (
			id UUID PRIMARY KEY,
			usuario_id UUID NOT NULL,
			cartao_id UUID NOT NULL REFERENCES cartoes(id) ON DELETE CASCADE,
			despesa_id UUID NOT NULL REFERENCES despesas(id) ON DELETE CASCADE,
			parcela_numero INT NOT NULL,
			total_parcelas INT NOT NULL,
			valor NUMERIC(14,2) NOT NULL,
			data_vencimento DATE NOT NULL,
			pago BOOLEAN NOT NULL DEFAULT FALSE,
			data_pagamento DATE,
			descricao TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS extrato_cartao_parcela_idx ON extrato_cartao (despesa_id, parcela_numero);`,
		`CREATE INDEX IF NOT EXISTS extrato_cartao_cartao_idx ON extrato_cartao (usuario_id, cartao_id, data_vencimento);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// translate maps driver errors onto the storage sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return storage.ErrAlreadyExists
		case "22P02":
			// malformed uuid or date literal: nothing can match it
			return storage.ErrNotFound
		}
	}
	return err
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// dateArg renders an optional range bound as a DATE literal or NULL.
func dateArg(d *daterange.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func dateFrom(t time.Time) daterange.Date {
	return daterange.FromTime(t)
}

func optionalDate(t *time.Time) *daterange.Date {
	if t == nil {
		return nil
	}
	d := daterange.FromTime(*t)
	return &d
}
