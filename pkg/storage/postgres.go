package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolationCode = "23505"

	urlHashConstraint = "links_url_hash_key"
	codeConstraint    = "links_code_key"
)

const schema = `
CREATE TABLE IF NOT EXISTS links (
	id BIGSERIAL PRIMARY KEY,
	url TEXT NOT NULL CHECK (char_length(url) <= 2000),
	url_hash TEXT NOT NULL,
	code TEXT NOT NULL CHECK (char_length(code) = 6),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT links_url_hash_key UNIQUE (url_hash),
	CONSTRAINT links_code_key UNIQUE (code)
);

CREATE TABLE IF NOT EXISTS accesses (
	id BIGSERIAL PRIMARY KEY,
	link_id BIGINT NOT NULL REFERENCES links(id),
	referrer_url TEXT,
	user_agent TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS accesses_link_id_created_at_idx
	ON accesses (link_id, created_at DESC);
`

type PostgresLinkStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresLinkStorage(pool *pgxpool.Pool) *PostgresLinkStorage {
	return &PostgresLinkStorage{pool: pool}
}

// EnsureSchema creates the links and accesses tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

func (s *PostgresLinkStorage) CreateLink(ctx context.Context, link *Link) error {
	query := `INSERT INTO links (url, url_hash, code) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query, link.URL, link.URLHash, link.Code).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (s *PostgresLinkStorage) GetByHash(ctx context.Context, urlHash string) (*Link, error) {
	query := `SELECT id, url, url_hash, code, created_at FROM links WHERE url_hash = $1`
	return s.getLink(ctx, query, urlHash)
}

func (s *PostgresLinkStorage) GetByCode(ctx context.Context, code string) (*Link, error) {
	query := `SELECT id, url, url_hash, code, created_at FROM links WHERE code = $1`
	return s.getLink(ctx, query, code)
}

func (s *PostgresLinkStorage) getLink(ctx context.Context, query string, arg any) (*Link, error) {
	row := s.pool.QueryRow(ctx, query, arg)
	var link Link
	err := row.Scan(&link.ID, &link.URL, &link.URLHash, &link.Code, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *PostgresLinkStorage) CreateAccess(ctx context.Context, access *Access) error {
	query := `INSERT INTO accesses (link_id, referrer_url, user_agent) VALUES ($1, $2, $3) RETURNING id, created_at`
	return s.pool.QueryRow(ctx, query, access.LinkID, access.ReferrerURL, access.UserAgent).
		Scan(&access.ID, &access.CreatedAt)
}

func (s *PostgresLinkStorage) ListAccesses(ctx context.Context, linkID int64, newestFirst bool) ([]Access, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := `SELECT id, link_id, referrer_url, user_agent, created_at FROM accesses WHERE link_id = $1 ORDER BY created_at ` + order + `, id ` + order

	rows, err := s.pool.Query(ctx, query, linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accesses := []Access{}
	for rows.Next() {
		var a Access
		if err := rows.Scan(&a.ID, &a.LinkID, &a.ReferrerURL, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, err
		}
		accesses = append(accesses, a)
	}
	return accesses, rows.Err()
}

// translateUniqueViolation maps a Postgres unique-constraint error onto the
// matching sentinel so the service layer can treat the race as a normal
// validation failure.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch pgErr.ConstraintName {
	case urlHashConstraint:
		return ErrDuplicateURL
	case codeConstraint:
		return ErrDuplicateCode
	}
	return err
}
