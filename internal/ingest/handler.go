package ingest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medbill/medbill/internal/domain/patient"
	"github.com/medbill/medbill/internal/platform/tabular"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/ingest/:kind", h.Ingest)
}

// documentTableRequest is the structured-document form: a front-end has
// already extracted the table cells from a document.
type documentTableRequest struct {
	Source string     `json:"source"`
	Rows   [][]string `json:"rows"`
}

// Ingest accepts a table upload tagged with its kind. CSV bodies are treated
// as delimited text; JSON bodies carry pre-extracted document tables.
func (h *Handler) Ingest(c echo.Context) error {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var src tabular.TableSource
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, "text/csv"):
		src = &tabular.DelimitedText{
			SourceName: sourceName(c),
			Reader:     c.Request().Body,
		}
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		var req documentTableRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		name := req.Source
		if name == "" {
			name = sourceName(c)
		}
		src = &tabular.DocumentTable{SourceName: name, Cells: req.Rows}
	default:
		return echo.NewHTTPError(http.StatusUnsupportedMediaType,
			"expected text/csv or application/json")
	}

	summary, err := h.svc.Ingest(c.Request().Context(), kind, src, c.QueryParam("provider"))
	if err != nil {
		return ingestError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func sourceName(c echo.Context) string {
	if name := c.QueryParam("source"); name != "" {
		return name
	}
	return "upload"
}

// ingestError maps the ingestion error taxonomy onto HTTP statuses while
// preserving the messages, which name the offending table, row and column.
func ingestError(err error) error {
	var (
		malformed *tabular.MalformedTableError
		schema    *SchemaMismatchError
		rate      *InvalidRateError
		dup       *patient.DuplicateIDError
	)
	switch {
	case errors.As(err, &malformed), errors.As(err, &schema), errors.As(err, &rate):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &dup):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
