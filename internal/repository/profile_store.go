package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"Stellium/internal/domain/models"
	domrepo "Stellium/internal/domain/repository"
)

// PostgresProfileStore implements repository.ProfileStore using pgx.
type PostgresProfileStore struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileStore(pool *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{pool: pool}
}

func (s *PostgresProfileStore) Create(ctx context.Context, p *models.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	const query = `
		INSERT INTO profiles (
			id, name, birth_date, birth_time,
			latitude, longitude, utc_offset_minutes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.pool.Exec(ctx, query,
		p.ID, p.Name, p.BirthDate, p.BirthTime,
		p.Latitude, p.Longitude, p.UTCOffsetMinutes,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile %s: %w", p.ID, err)
	}
	return nil
}

func (s *PostgresProfileStore) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const query = `
		SELECT id, name, birth_date, birth_time,
		       latitude, longitude, utc_offset_minutes,
		       created_at, updated_at
		FROM profiles WHERE id = $1`

	var p models.Profile
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.BirthDate, &p.BirthTime,
		&p.Latitude, &p.Longitude, &p.UTCOffsetMinutes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domrepo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile %s: %w", id, err)
	}
	return &p, nil
}

func (s *PostgresProfileStore) UpdateBirthData(ctx context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()

	const query = `
		UPDATE profiles SET
			birth_date = $2, birth_time = $3,
			latitude = $4, longitude = $5, utc_offset_minutes = $6,
			updated_at = $7
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query,
		p.ID, p.BirthDate, p.BirthTime,
		p.Latitude, p.Longitude, p.UTCOffsetMinutes,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domrepo.ErrNotFound
	}
	return nil
}

func (s *PostgresProfileStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresProfileStore) Close() error {
	return nil // pool lifecycle is owned by the postgres client
}
