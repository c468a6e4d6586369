package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CSVEncoder serializa el reporte integral a CSV.
type CSVEncoder interface {
	Encode(report *dto.ExportReportResponse) ([]byte, error)
}

// ReportUseCase reportes de ventas e inventario, tablero y exportación.
// Los agregados se calculan en la base de datos (consultas de solo lectura);
// aquí solo se derivan porcentajes y promedios.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	csv         CSVEncoder
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	csv CSVEncoder,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		csv:         csv,
	}
}

// SalesReport reporte de ventas del rango [from, to].
func (uc *ReportUseCase) SalesReport(ctx context.Context, from, to time.Time, includeSales bool) (*dto.SalesReportResponse, error) {
	summary, err := uc.reportRepo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byMethod, err := uc.reportRepo.SalesByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportRepo.TopProducts(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:             from,
		To:               to,
		TotalRevenue:     summary.TotalRevenue,
		TotalTax:         summary.TotalTax,
		TotalDiscount:    summary.TotalDiscount,
		TransactionCount: summary.TransactionCount,
	}
	if summary.TransactionCount > 0 {
		resp.AverageTransaction = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.TransactionCount))).Round(2)
	}
	for _, m := range byMethod {
		share := decimal.Zero
		if summary.TotalRevenue.GreaterThan(decimal.Zero) {
			share = m.Revenue.Div(summary.TotalRevenue).Mul(hundred).Round(1)
		}
		resp.ByPaymentMethod = append(resp.ByPaymentMethod, dto.PaymentMethodReport{
			PaymentMethod: m.PaymentMethod,
			Revenue:       m.Revenue,
			Count:         m.Count,
			Share:         share,
		})
	}
	for _, t := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductReport{
			ProductID: t.ProductID,
			Name:      t.Name,
			SKU:       t.SKU,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue,
		})
	}
	if includeSales {
		sales, err := uc.saleRepo.List(&from, &to, 500, 0)
		if err != nil {
			return nil, err
		}
		for _, s := range sales {
			resp.Sales = append(resp.Sales, dto.SaleResponse{
				ID:             s.ID,
				SaleNumber:     s.SaleNumber,
				CustomerName:   s.CustomerName,
				Subtotal:       s.Subtotal,
				TaxAmount:      s.TaxAmount,
				DiscountAmount: s.DiscountAmount,
				TotalAmount:    s.TotalAmount,
				PaymentMethod:  s.PaymentMethod,
				PaymentStatus:  s.PaymentStatus,
				CreatedAt:      s.CreatedAt,
			})
		}
	}
	return resp, nil
}

// CategoryReport desempeño por categoría: ingresos y unidades vendidas del
// rango más valor de inventario actual, ordenado por ventas.
func (uc *ReportUseCase) CategoryReport(ctx context.Context, from, to time.Time) (*dto.CategoryReportResponse, error) {
	rows, err := uc.reportRepo.CategoryPerformance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	for _, row := range rows {
		totalRevenue = totalRevenue.Add(row.Revenue)
	}

	resp := &dto.CategoryReportResponse{From: from, To: to}
	for _, row := range rows {
		share := decimal.Zero
		if totalRevenue.GreaterThan(decimal.Zero) {
			share = row.Revenue.Div(totalRevenue).Mul(hundred).Round(1)
		}
		resp.Categories = append(resp.Categories, dto.CategoryReport{
			CategoryID:   row.CategoryID,
			Name:         row.Name,
			ProductCount: row.ProductCount,
			UnitsSold:    row.UnitsSold,
			Revenue:      row.Revenue,
			Share:        share,
			StockUnits:   row.StockUnits,
			StockValue:   row.StockValue,
		})
	}
	return resp, nil
}

// InventoryReport valoración actual del inventario y productos en stock bajo.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*dto.InventoryReportResponse, error) {
	valuation, err := uc.reportRepo.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryReportResponse{
		ProductCount: valuation.ProductCount,
		TotalUnits:   valuation.TotalUnits,
		CostValue:    valuation.CostValue,
		RetailValue:  valuation.RetailValue,
		OutOfStock:   valuation.OutOfStock,
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if !p.LowStock() {
			continue
		}
		resp.LowStock = append(resp.LowStock, dto.ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			StockQuantity: p.StockQuantity,
			MinStockLevel: p.MinStockLevel,
			Unit:          p.Unit,
			CostPrice:     p.CostPrice,
			SellingPrice:  p.SellingPrice,
			LowStock:      true,
		})
	}
	return resp, nil
}

// Dashboard agregados del tablero: conteos, ingresos de hoy y de 30 días,
// últimas ventas.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.reportRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := uc.reportRepo.SalesSummary(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	month, err := uc.reportRepo.SalesSummary(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Products:      counts.Products,
		Categories:    counts.Categories,
		Suppliers:     counts.Suppliers,
		LowStock:      counts.LowStock,
		RevenueToday:  today.TotalRevenue,
		Revenue30Days: month.TotalRevenue,
		SalesToday:    today.TransactionCount,
	}
	if month.TransactionCount > 0 {
		resp.AverageSale = month.TotalRevenue.Div(decimal.NewFromInt(int64(month.TransactionCount))).Round(2)
	}
	recent, err := uc.saleRepo.List(nil, nil, 5, 0)
	if err != nil {
		return nil, err
	}
	for _, s := range recent {
		resp.RecentSales = append(resp.RecentSales, dto.SaleResponse{
			ID:            s.ID,
			SaleNumber:    s.SaleNumber,
			CustomerName:  s.CustomerName,
			TotalAmount:   s.TotalAmount,
			PaymentMethod: s.PaymentMethod,
			CreatedAt:     s.CreatedAt,
		})
	}
	return resp, nil
}

// BuildExport arma el reporte integral para exportar.
func (uc *ReportUseCase) BuildExport(ctx context.Context, name string, from, to time.Time) (*dto.ExportReportResponse, error) {
	if name == "" {
		name = "comprehensive-report"
	}
	sales, err := uc.SalesReport(ctx, from, to, false)
	if err != nil {
		return nil, err
	}
	categories, err := uc.CategoryReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.InventoryReport(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	report := &dto.ExportReportResponse{
		GeneratedAt: time.Now(),
		ReportName:  name,
		Sales:       *sales,
		Categories:  *categories,
		Inventory:   *inventory,
	}
	for _, p := range products {
		report.Products = append(report.Products, dto.ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Barcode:       p.Barcode,
			CategoryID:    p.CategoryID,
			SupplierID:    p.SupplierID,
			CostPrice:     p.CostPrice,
			SellingPrice:  p.SellingPrice,
			StockQuantity: p.StockQuantity,
			MinStockLevel: p.MinStockLevel,
			Unit:          p.Unit,
			LowStock:      p.LowStock(),
		})
	}
	return report, nil
}

// ExportCSV serializa el reporte integral a CSV.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, name string, from, to time.Time) ([]byte, error) {
	report, err := uc.BuildExport(ctx, name, from, to)
	if err != nil {
		return nil, err
	}
	return uc.csv.Encode(report)
}
