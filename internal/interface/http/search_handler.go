package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/application"
	"github.com/RangiraDave/Test-copilot/pkg/response"
)

// SearchHandler serves the LLM-backed advisor endpoint.
type SearchHandler struct {
	Svc    *application.AdvisorService
	Logger *logrus.Logger
}

func NewSearchHandler(svc *application.AdvisorService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// Ask GET /api/search?question=...
func (h *SearchHandler) Ask(c *gin.Context) {
	question := c.Query("question")
	answer, err := h.Svc.Ask(c.Request.Context(), question)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": answer}, "search answer", nil)
}
