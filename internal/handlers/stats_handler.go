package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inklab/studio-manager/internal/cache"
	domain "github.com/inklab/studio-manager/internal/domain/giftcard"
	"github.com/inklab/studio-manager/internal/httperr"
	"github.com/inklab/studio-manager/internal/timezone"
)

// StatsHandler serve i conteggi della dashboard con cache-aside: la
// cache assorbe i refresh ripetuti, le mutazioni la invalidano.
type StatsHandler struct {
	repo  domain.Repository
	cache *cache.StatsCache
}

func NewStatsHandler(repo domain.Repository, statsCache *cache.StatsCache) *StatsHandler {
	return &StatsHandler{repo: repo, cache: statsCache}
}

func (h *StatsHandler) GiftCardStats(c *gin.Context) {
	ctx := c.Request.Context()

	var cached domain.Stats
	if h.cache.Get(ctx, cache.StatsKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats, err := h.repo.Stats(ctx, timezone.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Errore nel calcolare le statistiche.")
		return
	}

	h.cache.Set(ctx, cache.StatsKey, stats)

	c.JSON(http.StatusOK, stats)
}
