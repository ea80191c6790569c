package httpapi

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polarsight/sea-ice-analyst/internal/adapter/openai"
	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/session"
)

const defaultPreviewRows = 5

// handleUploadDataset loads an uploaded CSV and makes it the session dataset.
// POST /api/v1/dataset — multipart field "file", or the raw request body.
func (s *Server) handleUploadDataset(c *gin.Context) {
	data, err := s.readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ds, err := s.session.LoadDataset(data)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"rows":        ds.Len(),
			"source_hash": ds.SourceHash,
			"loaded_at":   ds.LoadedAt,
		},
	})
}

// handlePreview returns the first rows of the dataset.
// GET /api/v1/dataset/preview?limit=n
func (s *Server) handlePreview(c *gin.Context) {
	limit := defaultPreviewRows
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	rows, err := s.session.Preview(limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{"count": len(rows)},
	})
}

// handleSeries returns dated extent points for the time-series chart.
// GET /api/v1/series
func (s *Server) handleSeries(c *gin.Context) {
	points, err := s.session.Series()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": points,
		"meta": gin.H{"count": len(points)},
	})
}

// handleTrend returns yearly hemisphere averages and their OLS trend lines.
// GET /api/v1/trend
func (s *Server) handleTrend(c *gin.Context) {
	points, lines, err := s.session.Trend()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"yearly_averages": points,
			"trend_lines":     lines,
		},
	})
}

// handleStats returns the per-hemisphere summaries and era comparison.
// GET /api/v1/stats
func (s *Server) handleStats(c *gin.Context) {
	hemiStats, err := s.session.Stats()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hemiStats})
}

type reportRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// handleReport generates the prose analysis report via the chat-completion
// service. POST /api/v1/report with body {"api_key": "..."}.
func (s *Server) handleReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), reportTimeout)
	defer cancel()

	text, err := s.session.GenerateReport(ctx, req.APIKey)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"report": text}})
}

// readUpload extracts CSV bytes from a multipart "file" field, falling back
// to the raw request body. Uploads are capped at MaxUploadBytes.
func (s *Server) readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	if fileHeader, err := c.FormFile("file"); err == nil {
		return readMultipartFile(fileHeader)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.New("read upload: " + err.Error())
	}
	if len(data) == 0 {
		return nil, errors.New("empty upload: provide a CSV file")
	}
	return data, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// renderError converts any action failure into a single user-visible message
// with the underlying cause, leaving the session stable and retryable.
func (s *Server) renderError(c *gin.Context, err error) {
	var authErr *openai.AuthError
	var netErr *openai.NetworkError
	var svcErr *openai.ServiceError

	switch {
	case errors.Is(err, session.ErrNoDataset):
		c.JSON(http.StatusConflict, gin.H{"error": "no dataset loaded: upload a CSV first"})
	case errors.Is(err, session.ErrReportInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &netErr), errors.As(err, &svcErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrComputation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
