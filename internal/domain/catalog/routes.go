package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/lead-status-list", h.listStatuses)
	r.GET("/lead-channel-list", h.listChannels)
	r.GET("/lead-conversion-list", h.listConversions)
	r.GET("/product-service-list", h.listProductServices)

	r.POST("/save-lead-status", h.saveEntry(KindStatus))
	r.POST("/save-lead-channel", h.saveEntry(KindChannel))
	r.POST("/save-lead-conversion", h.saveEntry(KindConversion))
	r.POST("/save-product-service", h.saveEntry(KindProductService))
}
