package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/mtga-ko/internal/services"
)

// Error bodies returned by the translate endpoint. Clients match on them.
const (
	ErrMissingSearchValue = "텍스트 입력없음"
	ErrCardNotFound       = "카드를 찾을 수 없습니다."
)

type CardHandler struct {
	lookupService *services.LookupService
}

func NewCardHandler(lookupService *services.LookupService) *CardHandler {
	return &CardHandler{
		lookupService: lookupService,
	}
}

// Translate returns the exported record for ?search_value=, matched exactly
// (ignoring case) against the English title or the Korean name. An unknown
// card answers 200 with an error body so clients only branch on the body.
func (h *CardHandler) Translate(c *gin.Context) {
	query := c.Query("search_value")
	if query == "" {
		c.PureJSON(http.StatusBadRequest, gin.H{"error": ErrMissingSearchValue})
		return
	}

	record, ok := h.lookupService.Lookup(query)
	if !ok {
		c.PureJSON(http.StatusOK, gin.H{"error": ErrCardNotFound})
		return
	}

	c.PureJSON(http.StatusOK, record)
}

// Health reports the served document alongside the usual status.
func (h *CardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"document": h.lookupService.Stats(),
	})
}

// Reload re-reads the card document from disk.
func (h *CardHandler) Reload(c *gin.Context) {
	if err := h.lookupService.Load(c.Request.Context()); err != nil {
		log.Printf("Reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": h.lookupService.Stats()})
}
