package errors

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes Problem Details responses. Errors are offered to each mapper in
// order; anything left unmapped becomes a 500 whose cause is logged, not returned.
type Responder struct {
	baseURI      string
	mappers      []ErrorMapper
	requestIDKey string
	logger       *slog.Logger
}

type ResponderOption func(*Responder)

// WithBaseURI is prepended to relative problem type URIs.
func WithBaseURI(uri string) ResponderOption {
	return func(r *Responder) {
		r.baseURI = uri
	}
}

func WithMappers(mappers ...ErrorMapper) ResponderOption {
	return func(r *Responder) {
		r.mappers = append(r.mappers, mappers...)
	}
}

// WithRequestIDKey copies the gin context value under key into a "requestId" member.
func WithRequestIDKey(key string) ResponderOption {
	return func(r *Responder) {
		r.requestIDKey = key
	}
}

// WithLogger overrides slog.Default for unmapped errors.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		r.logger = logger
	}
}

func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond sends problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if r.requestIDKey != "" {
		if id := c.GetString(r.requestIDKey); id != "" {
			problem = problem.WithExtension("requestId", id)
		}
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err through the mappers, then accepts a ProblemDetail in the chain,
// then falls back to a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.log().LogAttrs(c.Request.Context(), slog.LevelError, "unhandled request error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()))
	r.Respond(c, ErrInternal.WithDetail("unexpected error"))
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
