package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ryanap7/diwan-print-agent/internal/application/service"
	"github.com/ryanap7/diwan-print-agent/internal/platform"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/dto/request"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/dto/response"
)

// PrintHandler handles receipt print dispatch requests.
type PrintHandler struct {
	printService *service.PrintService
	maxImageSize int64
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(printService *service.PrintService, maxImageSize int64) *PrintHandler {
	return &PrintHandler{printService: printService, maxImageSize: maxImageSize}
}

// capabilities merges UA sniffing with client-reported fields.
func capabilities(c *gin.Context, info request.ClientInfo) platform.Capabilities {
	caps := platform.FromUserAgent(c.GetHeader("User-Agent"))
	return caps.Merge(info.IsAndroid, info.IsMobile, info.HasBluetooth, info.HasShare)
}

// PrintReceipt formats a receipt and dispatches it to the best channel.
func (h *PrintHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.printService.SmartPrint(c.Request.Context(), req.Receipt, capabilities(c, req.Client), req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result.Message, result)
}

// PrintText dispatches pre-formatted receipt text.
func (h *PrintHandler) PrintText(c *gin.Context) {
	var req request.PrintTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.printService.PrintText(c.Request.Context(), req.Text, capabilities(c, req.Client), req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result.Message, result)
}

// PrintImage rasterizes an uploaded image and prints it over Bluetooth.
// Accepts multipart form uploads under the "image" field.
func (h *PrintHandler) PrintImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image upload is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxImageSize {
		response.BadRequest(c, "image exceeds the upload size limit")
		return
	}

	result, err := h.printService.PrintImage(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result.Message, result)
}

// ConfirmHandoff marks an app handoff as taken over by the printing app.
func (h *PrintHandler) ConfirmHandoff(c *gin.Context) {
	if err := h.printService.ConfirmHandoff(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Handoff confirmed", nil)
}

// HandoffStatus returns the state of an app handoff.
func (h *PrintHandler) HandoffStatus(c *gin.Context) {
	info, err := h.printService.HandoffStatus(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Handoff status retrieved", info)
}
