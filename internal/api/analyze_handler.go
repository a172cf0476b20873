package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sarasmohod/hackathon-rift/internal/analysis"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/graph"
	"github.com/sarasmohod/hackathon-rift/internal/ingest"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

// AnalyzeHandler is the thin HTTP adapter in front of the analysis
// engine: file upload in, scored payload plus render topology out. It
// holds no decision logic of its own.
type AnalyzeHandler struct {
	engine *analysis.Engine
	log    *logger.Logger
}

// NewAnalyzeHandler creates the analyze handler.
func NewAnalyzeHandler(engine *analysis.Engine, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine: engine,
		log:    log.Named("analyze_handler"),
	}
}

// Register attaches the API routes.
func (h *AnalyzeHandler) Register(e *echo.Echo) {
	e.POST("/api/analyze", h.Analyze)
}

// AnalyzeResponse is the combined payload returned to the frontend.
type AnalyzeResponse struct {
	Analysis *domain.AnalysisResult `json:"analysis"`
	Topology graph.Topology         `json:"topology"`
}

// ErrorResponse wraps the single structured error surfaced on failure.
type ErrorResponse struct {
	Error *domain.AnalysisError `json:"error"`
}

// Analyze handles POST /api/analyze: a multipart CSV upload under
// "file" plus an optional comma-separated "whitelist" form field.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: &domain.AnalysisError{
			Kind:    domain.ErrKindMalformedRecord,
			Message: "missing file upload",
		}})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Warn("failed to open upload", logger.ErrorField(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: &domain.AnalysisError{
			Kind:    domain.ErrKindMalformedRecord,
			Message: "cannot read file upload",
		}})
	}
	defer file.Close()

	txs, err := ingest.ParseCSV(file)
	if err != nil {
		return h.writeError(c, err)
	}

	whitelist := domain.ParseWhitelist(c.FormValue("whitelist"))

	result, err := h.engine.Analyze(c.Request().Context(), txs, whitelist)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Analysis: result.Result,
		Topology: result.Graph.Topology(),
	})
}

func (h *AnalyzeHandler) writeError(c echo.Context, err error) error {
	var ae *domain.AnalysisError
	if errors.As(err, &ae) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ae})
	}

	h.log.Error("analysis failed", logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: &domain.AnalysisError{
		Kind:    "INTERNAL",
		Message: "analysis failed",
	}})
}
