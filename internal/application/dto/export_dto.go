package dto

import "time"

// ExportReportResponse reporte integral para exportación (CSV/JSON).
type ExportReportResponse struct {
	GeneratedAt time.Time               `json:"generated_at"`
	ReportName  string                  `json:"report_name"`
	Sales       SalesReportResponse     `json:"sales"`
	Categories  CategoryReportResponse  `json:"categories"`
	Inventory   InventoryReportResponse `json:"inventory"`
	Products    []ProductResponse       `json:"products"`
}
