package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the settings and webhook endpoints on r.
func RegisterRoutes(r gin.IRoutes, webhook *WebhookHandler, settings *SettingsHandler) {
	r.GET("/settings", settings.HandleGetSettings)
	r.POST("/settings", settings.HandleUpdateSettings)
	r.PATCH("/settings", settings.HandleUpdateSettings)
	r.POST("/webhook", webhook.HandleWebhook)
}
