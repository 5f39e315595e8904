package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

// filterState reads the explicit selector parameters; missing ones mean "All".
func filterState(c *gin.Context) domain.FilterState {
	return domain.FilterState{
		Domain:   c.Query("domain"),
		Language: c.Query("language"),
	}.Normalize()
}

func (h *Handler) filters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "options": h.catalog.Options()})
}

func (h *Handler) list(c *gin.Context) {
	res := h.catalog.Filter(c.Request.Context(), filterState(c))

	body := gin.H{
		"ok":       true,
		"filters":  res.State,
		"count":    len(res.Projects),
		"projects": res.Projects,
		"empty":    res.Empty,
	}
	if res.Empty {
		body["message"] = res.Message
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) downloadSynopsis(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	d, err := h.synopsis.Resolve(c.Request.Context(), p)
	if err != nil {
		h.log.Error("synopsis resolve failed", zap.String("project_id", p.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "synopsis unavailable"})
		return
	}

	if d.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, d.RedirectURL)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.FileName))
	c.Data(http.StatusOK, d.ContentType, d.Body)
}
