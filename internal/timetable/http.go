package timetable

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

// Register attaches timetable routes to the given router group.
func Register(rg *gin.RouterGroup) {
	h := &Handler{}

	rg.GET("", h.list)
	rg.GET("/:semester", h.view)
	rg.GET("/:semester/preview", h.preview)
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "semesters": Semesters})
}

func (h *Handler) view(c *gin.Context) {
	sem, err := ParseSemester(c.Param("semester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": StartAnewMessage})
		return
	}

	var open []Section
	for _, raw := range c.QueryArray("popup") {
		p, err := ParsePopup(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown popup " + raw})
			return
		}
		open = append(open, p)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "view": NewViewState(sem, open...)})
}

func (h *Handler) preview(c *gin.Context) {
	sem, err := ParseSemester(c.Param("semester"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": StartAnewMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": PreviewFor(sem)})
}
