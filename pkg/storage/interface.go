package storage

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateURL is returned by CreateLink when another Link already
	// holds the same url_hash (a concurrent shorten of the same URL).
	ErrDuplicateURL = errors.New("url hash already exists")
	// ErrDuplicateCode is returned by CreateLink when the generated code
	// is already taken.
	ErrDuplicateCode = errors.New("code already exists")
)

type LinkStorage interface {
	// CreateLink inserts a new Link and fills in ID and CreatedAt.
	// The unique constraints are the source of truth for dedup and code
	// collisions; violations surface as ErrDuplicateURL / ErrDuplicateCode.
	CreateLink(ctx context.Context, link *Link) error
	// GetByHash returns the Link with the given fingerprint, or nil when absent.
	GetByHash(ctx context.Context, urlHash string) (*Link, error)
	// GetByCode returns the Link with the given code, or nil when absent.
	GetByCode(ctx context.Context, code string) (*Link, error)
	// CreateAccess appends one access row and fills in ID and CreatedAt.
	CreateAccess(ctx context.Context, access *Access) error
	// ListAccesses returns the accesses of a Link, newest first when
	// newestFirst is set, oldest first otherwise.
	ListAccesses(ctx context.Context, linkID int64, newestFirst bool) ([]Access, error)
}
