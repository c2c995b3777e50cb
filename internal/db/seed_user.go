package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/padhaihub/tutorhub/internal/config"
	"github.com/padhaihub/tutorhub/internal/security"
)

// EnsureSeedUser creates the configured demo user if it does not exist yet,
// so a fresh database can serve both ask paths immediately. There is no
// signup endpoint; users are provisioned out of band.
func EnsureSeedUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.SeedEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedPassword)

	if err != nil {
		return err
	}

	var token *string

	if cfg.SeedToken != "" {
		token = &cfg.SeedToken
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, board, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		uuid.NewString(), cfg.SeedEmail, hash, cfg.SeedBoard, token, time.Now().UTC(),
	)

	return err
}
