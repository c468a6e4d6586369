package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/application/reports"
)

// ReportHandler maneja reportes de ventas e inventario, tablero y exportaciones.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// reportRange lee from/to de la query; por defecto los últimos 30 días.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, to, err := parseDateRange(c)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	now := time.Now()
	f := now.AddDate(0, 0, -30)
	t := now
	if from != nil {
		f = *from
	}
	if to != nil {
		t = *to
	}
	return f, t, nil
}

// Sales godoc
// @Summary      Reporte de ventas (rango de fechas)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to             query  string  false  "Fecha final (2006-01-02)"
// @Param        include_sales  query  bool    false  "Incluir el detalle de ventas"
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato 2006-01-02"})
	}
	out, err := h.uc.SalesReport(c.Context(), from, to, c.QueryBool("include_sales", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Reporte de desempeño por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to    query  string  false  "Fecha final (2006-01-02)"
// @Success      200  {object}  dto.CategoryReportResponse
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato 2006-01-02"})
	}
	out, err := h.uc.CategoryReport(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario (valoración y stock bajo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Agregados del tablero principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte integral (csv o json)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "csv | json"  default(json)
// @Param        name    query  string  false  "Nombre del reporte"
// @Param        from    query  string  false  "Fecha inicial (2006-01-02)"
// @Param        to      query  string  false  "Fecha final (2006-01-02)"
// @Success      200
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas en formato 2006-01-02"})
	}
	name := c.Query("name")
	switch c.Query("format", "json") {
	case "csv":
		data, err := h.uc.ExportCSV(c.Context(), name, from, to)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="report.csv"`)
		return c.Send(data)
	case "json":
		out, err := h.uc.BuildExport(c.Context(), name, from, to)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser csv o json"})
	}
}
