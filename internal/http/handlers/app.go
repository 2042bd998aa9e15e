package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"redstring/internal/domain"
)

const (
	// DefaultSearchLimit caps the rows returned by /search-individuals.
	DefaultSearchLimit = 50

	maxBodyBytes = 1 << 20
)

// App carries the repositories the JSON handlers read from.
type App struct {
	Individuals   domain.IndividualRepository
	Contributions domain.ContributionRepository
	Categories    domain.CategoryRepository
	Logger        zerolog.Logger
	SearchLimit   int
	// DB backs the health check; nil reports the process alone.
	DB Pinger

	validate *validator.Validate
}

func NewApp(individuals domain.IndividualRepository, contributions domain.ContributionRepository, categories domain.CategoryRepository, logger zerolog.Logger) *App {
	return &App{
		Individuals:   individuals,
		Contributions: contributions,
		Categories:    categories,
		Logger:        logger,
		SearchLimit:   DefaultSearchLimit,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, errorBody{Error: kind, Message: message})
}

// fail maps err onto a status code and logs anything that is not the
// caller's fault.
func (a *App) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		a.logger(r).Error().Err(err).Str("op", op).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", op+" failed")
	}
}

// logger prefers the request-scoped logger installed by the access-log
// middleware.
func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

// decode reads a JSON body into dst and runs struct validation on it.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("invalid payload: %w", domain.ErrInvalidInput)
	}
	return a.check(dst)
}

func (a *App) check(v any) error {
	if a.validate == nil {
		a.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	err := a.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s: %w", strings.Join(fields, ", "), domain.ErrInvalidInput)
	}
	return fmt.Errorf("validate request: %w", err)
}
