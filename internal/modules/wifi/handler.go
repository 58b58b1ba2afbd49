package wifi

import (
	"fmt"
	"net/http"

	"clubdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// Handler renders the guest WiFi credentials as a scannable QR PNG.
type Handler struct {
	ssid     string
	password string
}

func NewHandler(ssid, password string) *Handler {
	return &Handler{ssid: ssid, password: password}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wifi/qr", h.QR)
}

func (h *Handler) QR(c *gin.Context) {
	if h.ssid == "" {
		response.Error(c, http.StatusNotFound, "NOT_CONFIGURED", "WiFi credentials are not configured")
		return
	}

	payload := fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", h.ssid, h.password)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
