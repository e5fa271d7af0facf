package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shortlink/pkg/logging"
	"shortlink/pkg/middleware"
	"shortlink/pkg/service"

	"github.com/go-chi/chi/v5"
)

// codePattern restricts route matching to exactly six alphanumeric chars.
const codePattern = "{code:[0-9A-Za-z]{6}}"

// missingFieldPlaceholder is substituted for absent referrer/user-agent
// values at serialization time only; storage keeps them NULL.
const missingFieldPlaceholder = "none"

type Handler struct {
	linkService *service.LinkService
	baseURL     string
}

// NewHandler returns a Handler. baseURL is the public base of short
// links; when empty, the request's own scheme and host are used.
func NewHandler(linkService *service.LinkService, baseURL string) *Handler {
	return &Handler{
		linkService: linkService,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

type createRequest struct {
	LongURL string `json:"long_url"`
}

type createResponse struct {
	LongURL   string `json:"long_url"`
	ShortLink string `json:"short_link"`
}

type errorResponse struct {
	Errors map[string]string `json:"errors"`
}

type accessEntry struct {
	Time      time.Time `json:"time"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
}

type reportResponse struct {
	Response []accessEntry `json:"response"`
}

func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	// An unparseable body leaves the zero request, which then fails the
	// normal presence validation instead of raising a parse error.
	_ = json.NewDecoder(r.Body).Decode(&req)

	link, created, err := h.linkService.Shorten(r.Context(), req.LongURL)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Errors: verrs.Joined()})
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, createResponse{
		LongURL:   link.URL,
		ShortLink: h.shortLinkFor(r, link.Code),
	})
}

func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	link, err := h.linkService.Resolve(r.Context(), code, service.RequestMeta{
		ReferrerURL: r.Referer(),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, link.URL, http.StatusMovedPermanently)
}

func (h *Handler) ListAccesses(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	accesses, err := h.linkService.ListAccesses(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entries := make([]accessEntry, 0, len(accesses))
	for _, a := range accesses {
		entries = append(entries, accessEntry{
			Time:      a.CreatedAt,
			Referrer:  orPlaceholder(a.ReferrerURL),
			UserAgent: orPlaceholder(a.UserAgent),
		})
	}
	writeJSON(w, http.StatusOK, reportResponse{Response: entries})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) shortLinkFor(r *http.Request, code string) string {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/" + code
}

func orPlaceholder(v *string) string {
	if v == nil || *v == "" {
		return missingFieldPlaceholder
	}
	return *v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func SetupRoutes(r *chi.Mux, handler *Handler, logger *logging.Logger) {
	r.Use(middleware.CorrelationID(logger))
	r.Get("/health", handler.HealthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/links", handler.CreateLink)
	})
	r.Get("/"+codePattern+"/accesses", handler.ListAccesses)
	r.Get("/"+codePattern, handler.Redirect)
}

// SetupRedirectRoutes wires only the redirect hot path, for the
// standalone redirect binary.
func SetupRedirectRoutes(r *chi.Mux, handler *Handler, logger *logging.Logger) {
	r.Use(middleware.CorrelationID(logger))
	r.Get("/health", handler.HealthCheck)
	r.Get("/"+codePattern, handler.Redirect)
}
