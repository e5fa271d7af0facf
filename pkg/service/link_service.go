package service

import (
	"context"
	"errors"
	"time"

	"shortlink/pkg/cache"
	"shortlink/pkg/logging"
	"shortlink/pkg/storage"
	"shortlink/pkg/urlnorm"
)

const (
	maxURLLength = 2000

	// One initial attempt plus three retries. The retry loop is a latency
	// optimization; the store's unique constraint on code is the source
	// of truth.
	maxCodeAttempts = 4

	defaultCacheTTL  = 24 * time.Hour
	negativeCacheTTL = 5 * time.Minute
)

type LinkService struct {
	storage  storage.LinkStorage
	cache    cache.LinkCacheInterface
	gen      CodeGenerator
	logger   *logging.Logger
	cacheTTL time.Duration
}

func NewLinkService(storage storage.LinkStorage, cache cache.LinkCacheInterface, gen CodeGenerator, logger *logging.Logger) *LinkService {
	return &LinkService{
		storage:  storage,
		cache:    cache,
		gen:      gen,
		logger:   logger,
		cacheTTL: defaultCacheTTL,
	}
}

// SetCacheTTL overrides how long resolved links stay cached.
func (s *LinkService) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

// RequestMeta carries the request context captured for access recording.
// Absent values stay empty and are stored as NULL, never defaulted.
type RequestMeta struct {
	ReferrerURL string
	UserAgent   string
}

// Shorten validates longURL and returns its Link, creating one only when
// no Link with the same fingerprint exists. The returned bool is true
// when a new Link was created. Validation failures come back as
// ValidationErrors.
func (s *LinkService) Shorten(ctx context.Context, longURL string) (*storage.Link, bool, error) {
	if errs := validateLongURL(longURL); len(errs) > 0 {
		s.logger.LogValidationFailure(ctx, []string{"long_url"})
		return nil, false, errs
	}

	hash, err := urlnorm.Fingerprint(longURL)
	if err != nil {
		// The validator accepted the input, so a parse failure here means
		// the URL is not usable after all.
		return nil, false, fieldError("long_url", msgInvalid)
	}

	existing, err := s.storage.GetByHash(ctx, hash)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.logger.LogShorten(ctx, existing.Code, false)
		return existing, false, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, false, err
		}

		link := &storage.Link{
			URL:     longURL,
			URLHash: hash,
			Code:    code,
		}

		err = s.storage.CreateLink(ctx, link)
		switch {
		case err == nil:
			s.logger.LogShorten(ctx, code, true)
			return link, true, nil
		case errors.Is(err, storage.ErrDuplicateCode):
			continue
		case errors.Is(err, storage.ErrDuplicateURL):
			// A concurrent shorten of the same URL won the insert race.
			return nil, false, fieldError("url", msgNotUnique)
		default:
			return nil, false, err
		}
	}

	return nil, false, fieldError("long_url", msgNotShortenable)
}

// validateLongURL reports at most one message category: a blank or
// over-long value suppresses the syntax check.
func validateLongURL(longURL string) ValidationErrors {
	errs := ValidationErrors{}
	switch {
	case longURL == "":
		errs.Add("long_url", msgBlank)
	case len(longURL) > maxURLLength:
		errs.Add("long_url", msgTooLong)
	case !urlnorm.IsValid(longURL):
		errs.Add("long_url", msgInvalid)
	}
	return errs
}

// Resolve looks up a Link by code and records one access against it.
// Recording is best effort: a recorder failure is logged and the Link is
// still returned so the redirect goes through.
func (s *LinkService) Resolve(ctx context.Context, code string, meta RequestMeta) (*storage.Link, error) {
	link, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		s.logger.LogRedirect(ctx, code, false)
		return nil, ErrNotFound
	}

	s.recordAccess(ctx, link, meta)
	s.logger.LogRedirect(ctx, code, true)
	return link, nil
}

func (s *LinkService) lookup(ctx context.Context, code string) (*storage.Link, error) {
	cached, err := s.cache.Get(ctx, code)
	if err != nil {
		s.logger.Warn(ctx, "cache lookup failed", "code", code, "error", err)
	}
	if cached != nil {
		if cached.LinkID == 0 {
			// Cached miss.
			return nil, nil
		}
		return &storage.Link{ID: cached.LinkID, URL: cached.URL, Code: code}, nil
	}

	link, err := s.storage.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		s.cache.Set(ctx, code, &cache.CachedLink{}, negativeCacheTTL)
		return nil, nil
	}

	s.cache.Set(ctx, code, &cache.CachedLink{LinkID: link.ID, URL: link.URL}, s.cacheTTL)
	return link, nil
}

func (s *LinkService) recordAccess(ctx context.Context, link *storage.Link, meta RequestMeta) {
	access := &storage.Access{
		LinkID:      link.ID,
		ReferrerURL: nullable(meta.ReferrerURL),
		UserAgent:   nullable(meta.UserAgent),
	}
	if err := s.storage.CreateAccess(ctx, access); err != nil {
		s.logger.Error(ctx, "access recording failed", "code", link.Code, "error", err)
	}
}

// ListAccesses returns the access log of the Link with the given code,
// newest first. A known code with no accesses yields an empty slice.
func (s *LinkService) ListAccesses(ctx context.Context, code string) ([]storage.Access, error) {
	link, err := s.storage.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}
	return s.storage.ListAccesses(ctx, link.ID, true)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
