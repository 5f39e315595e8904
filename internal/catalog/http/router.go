package http

import "github.com/gin-gonic/gin"

// Register attaches the JSON catalog API to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	h.apiBase = rg.BasePath()

	rg.GET("/filters", h.filters)
	rg.GET("/projects", h.list)
	rg.GET("/projects/:id", h.get)
	rg.GET("/projects/:id/synopsis", h.downloadSynopsis)
}

// RegisterPages attaches the server-rendered catalog page.
func (h *Handler) RegisterPages(r gin.IRouter) {
	r.GET("/catalog", h.catalogPage)
}
