package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/visit-overstay/internal/domain"
	"github.com/KasumiMercury/visit-overstay/internal/service/settings"
)

const (
	settingsMaxBodyBytes = 64 << 10

	notANumberMessage = "Value must be a number"
	outOfRangeMessage = "Allowed minutes must be between 0 and 180 minutes"
)

type SettingsHandler struct {
	service *settings.Service
}

func NewSettingsHandler(service *settings.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) HandleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Current())
}

// HandleUpdateSettings serves both POST and PATCH.
func (h *SettingsHandler) HandleUpdateSettings(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, settingsMaxBodyBytes))
	if err != nil {
		respondError(c, http.StatusBadRequest, notANumberMessage)
		return
	}

	applied, err := h.service.Update(c.Request.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfRange):
			respondError(c, http.StatusBadRequest, outOfRangeMessage)
		default:
			respondError(c, http.StatusBadRequest, notANumberMessage)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allowed_minutes": gin.H{
			"value": strconv.Itoa(applied.Minutes()),
		},
	})
}
