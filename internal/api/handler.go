package api

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gsarma/judgerelay/internal/language"
	"github.com/gsarma/judgerelay/internal/submission"
)

type Handler struct {
	svc    *submission.Service
	strict bool
	log    *slog.Logger
}

// Health reports that the process is serving.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListLanguages returns every accepted language label with its engine ID.
func (h *Handler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": language.Entries()})
}

// Submit executes source code on the remote engine and stores the outcome.
//
// Request body:
//
//	{
//	  "username":    "alice",
//	  "language":    "Python (3.11.2)",
//	  "source_code": "print('hello')",
//	  "stdin":       ""
//	}
func (h *Handler) Submit(c *gin.Context) {
	var body struct {
		Username   string `json:"username"`
		Language   any    `json:"language"`
		SourceCode string `json:"source_code"`
		Stdin      string `json:"stdin"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", submission.ErrInvalidRequest, err))
		return
	}
	// A language that is not a string can never match a label.
	lang, _ := body.Language.(string)

	res, err := h.svc.Submit(c.Request.Context(), submission.Request{
		Username:   body.Username,
		Language:   lang,
		SourceCode: body.SourceCode,
		Stdin:      body.Stdin,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Submitted successfully",
		"result":  res,
	})
}

// ListSubmissions returns stored submissions. Without query parameters every
// row is returned; limit, offset and since (any common date format) select a
// page. Rows are only capped when limit is given.
func (h *Handler) ListSubmissions(c *gin.Context) {
	var page submission.Page
	var err error
	if page.Limit, err = queryCount(c, "limit"); err != nil {
		h.fail(c, err)
		return
	}
	if page.Offset, err = queryCount(c, "offset"); err != nil {
		h.fail(c, err)
		return
	}
	if v := c.Query("since"); v != "" {
		since, err := dateparse.ParseAny(v)
		if err != nil {
			h.fail(c, fmt.Errorf("%w: since: %v", submission.ErrInvalidRequest, err))
			return
		}
		page.Since = &since
	}

	rows, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": rows})
}

// queryCount parses a non-negative 32-bit query parameter; absent means zero.
func queryCount(c *gin.Context, name string) (int32, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be an integer between 0 and %d", submission.ErrInvalidRequest, name, math.MaxInt32)
	}
	return int32(n), nil
}

// GetResult fetches the engine's current view of a submission token once.
// Nothing is stored.
func (h *Handler) GetResult(c *gin.Context) {
	token := c.Param("token")
	if _, err := uuid.Parse(token); err != nil {
		h.fail(c, fmt.Errorf("%w: token must be a UUID", submission.ErrInvalidRequest))
		return
	}

	res, err := h.svc.Result(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"token":          token,
		"status":         res.Status,
		"stdout":         res.Stdout,
		"stderr":         res.Stderr,
		"compile_output": res.CompileOutput,
	}})
}

// fail logs err and writes the client-facing error body.
func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)

	if errors.Is(err, submission.ErrInvalidLanguage) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid language"})
		return
	}

	status := http.StatusBadRequest
	if h.strict {
		var upErr *submission.UpstreamError
		var stErr *submission.StorageError
		switch {
		case errors.As(err, &upErr):
			status = http.StatusBadGateway
		case errors.As(err, &stErr):
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, gin.H{"message": "Error: " + err.Error()})
}
