package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fundbrief/internal/model"
)

// BriefStore is the read side of the retention store.
type BriefStore interface {
	Get() ([]model.DailyBrief, error)
}

type BriefHandler struct {
	store BriefStore
}

func NewBriefHandler(store BriefStore) *BriefHandler {
	return &BriefHandler{store: store}
}

// GetDailyBriefs serves whatever was last successfully persisted. It always
// answers 200: an empty store and a failed cycle both look like an empty
// array to clients.
func (h *BriefHandler) GetDailyBriefs(c *gin.Context) {
	briefs, err := h.store.Get()
	if err != nil {
		slog.Error("error reading briefs from store", "error", err)
		briefs = nil
	}

	if briefs == nil {
		briefs = []model.DailyBrief{}
	}

	c.JSON(http.StatusOK, briefs)
}

func (h *BriefHandler) GetHealth(c *gin.Context) {
	briefs, err := h.store.Get()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"briefs": len(briefs),
	})
}
