package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ryanap7/diwan-print-agent/internal/application/service"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/dto/response"
)

// PrinterHandler handles the physical printer lifecycle.
type PrinterHandler struct {
	printService *service.PrintService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printService *service.PrintService) *PrinterHandler {
	return &PrinterHandler{printService: printService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printService.Status())
}

// Connect scans for and attaches to a Bluetooth printer.
func (h *PrinterHandler) Connect(c *gin.Context) {
	if err := h.printService.Connect(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer connected", h.printService.Status())
}

// Disconnect detaches from the printer.
func (h *PrinterHandler) Disconnect(c *gin.Context) {
	if err := h.printService.Disconnect(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer disconnected", h.printService.Status())
}

// TestPrint sends a diagnostic page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	result, err := h.printService.TestPrint(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result.Message, result)
}
