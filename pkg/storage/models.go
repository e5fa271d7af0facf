package storage

import (
	"time"
)

// Link maps a short code to an original URL. Rows are immutable once
// inserted; dedup relies on the unique url_hash, collision safety on
// the unique code.
type Link struct {
	ID        int64     `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	URLHash   string    `json:"-" db:"url_hash"`
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Access is one recorded redirect of a Link. Referrer and user agent
// are stored verbatim from the request; absent values stay NULL.
type Access struct {
	ID          int64     `json:"id" db:"id"`
	LinkID      int64     `json:"link_id" db:"link_id"`
	ReferrerURL *string   `json:"referrer_url,omitempty" db:"referrer_url"`
	UserAgent   *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
