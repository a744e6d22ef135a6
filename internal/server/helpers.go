package server

import (
	"context"
	"errors"
	"log/slog"

	"simpleforum/internal/jobs"
	"simpleforum/internal/middleware"
	"simpleforum/internal/models"
	"simpleforum/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	maxPerPage = 100

	pgForeignKeyViolation = "23503"
)

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseListInput reads the filter and page parameters of a list endpoint.
// Missing or malformed page values fall back to the defaults.
func parseListInput(c *fiber.Ctx, likeParam string) service.ListInput {
	pageNum := c.QueryInt("page_num", models.DefaultPageNum)
	if pageNum <= 0 {
		pageNum = models.DefaultPageNum
	}

	perPage := c.QueryInt("per_page", models.DefaultPerPage)
	if perPage <= 0 {
		perPage = models.DefaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return service.ListInput{
		Like:    c.Query(likeParam),
		PageNum: pageNum,
		PerPage: perPage,
	}
}

// parseBody decodes the JSON body into out, writing a 400 on failure.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// atomic runs a mutation through the job scheduler so shutdown waits for it.
func (s *Server) atomic(c *fiber.Ctx, fn func(ctx context.Context) error) error {
	err := s.scheduler.Atomic(c.UserContext(), fn)
	if errors.Is(err, jobs.ErrClosed) {
		return models.NewUnavailableError("Server is shutting down")
	}
	return err
}

// respondServiceError maps a service or storage error onto an HTTP response.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	case models.CodeValidation:
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.CodeUnavailable:
		return models.RespondWithError(c, fiber.StatusServiceUnavailable, err)
	}

	// A row referenced by the request vanished between the service checks and the write.
	if isForeignKeyViolation(err) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Referenced record does not exist"))
	}

	middleware.Logger.ErrorContext(c.UserContext(), "Request failed",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
