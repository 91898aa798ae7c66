package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/reports"
)

// ReportHandler tablero y reportes PDF.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del tablero
// @Description  Ventas de hoy y del mes, trabajos pendientes, productos bajo mínimo y top 5 del mes.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reportes/resumen [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Reporte de ventas (PDF)
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        from      query  string  false  "Desde (YYYY-MM-DD), por defecto inicio de mes"
// @Param        to        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        store_id  query  string  false  "Tienda"
// @Success      200  {file}  file
// @Router       /api/reportes/ventas.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	r, err := dateRange(c)
	if err != nil {
		return validation(c, "rango de fechas inválido")
	}
	body, name, err := h.uc.SalesPDF(c.UserContext(), r, c.Query("store_id"))
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, body, name)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario valorizado (PDF)
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        store_id  query  string  true   "Tienda"
// @Success      200  {file}  file
// @Router       /api/reportes/inventario.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	body, name, err := h.uc.InventoryPDF(c.UserContext(), c.Query("store_id"))
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, body, name)
}

// JobsPDF godoc
// @Summary      Reporte de trabajos completados (PDF)
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        from           query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        seamstress_id  query  string  false  "Costurero"
// @Success      200  {file}  file
// @Router       /api/reportes/trabajos.pdf [get]
func (h *ReportHandler) JobsPDF(c *fiber.Ctx) error {
	r, err := dateRange(c)
	if err != nil {
		return validation(c, "rango de fechas inválido")
	}
	body, name, err := h.uc.JobsPDF(c.UserContext(), r, c.Query("seamstress_id"))
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, body, name)
}

func sendPDF(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
