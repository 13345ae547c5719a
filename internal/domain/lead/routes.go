package lead

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/lead-list", h.list)
	r.POST("/save-lead", h.save)
	r.POST("/update-lead", h.update)
	r.POST("/delete-lead", h.delete)
	r.POST("/update-lead-status", h.updateStatus)
	r.GET("/lead-history", h.history)
}
