package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/reports"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

type fakeReportRepo struct {
	categories []repository.CategoryPerformanceResult
}

func (r *fakeReportRepo) SalesSummary(context.Context, time.Time, time.Time) (*repository.SalesSummaryResult, error) {
	return &repository.SalesSummaryResult{}, nil
}
func (r *fakeReportRepo) SalesByPaymentMethod(context.Context, time.Time, time.Time) ([]repository.PaymentMethodResult, error) {
	return nil, nil
}
func (r *fakeReportRepo) TopProducts(context.Context, time.Time, time.Time, int) ([]repository.TopProductResult, error) {
	return nil, nil
}
func (r *fakeReportRepo) CategoryPerformance(context.Context, time.Time, time.Time) ([]repository.CategoryPerformanceResult, error) {
	return r.categories, nil
}
func (r *fakeReportRepo) InventoryValuation(context.Context) (*repository.InventoryValuationResult, error) {
	return &repository.InventoryValuationResult{}, nil
}
func (r *fakeReportRepo) Counts(context.Context) (*repository.DashboardCounts, error) {
	return &repository.DashboardCounts{}, nil
}

func TestCategoryReportShares(t *testing.T) {
	repo := &fakeReportRepo{categories: []repository.CategoryPerformanceResult{
		{CategoryID: "c1", Name: "Bebidas", ProductCount: 3, UnitsSold: 20, Revenue: decimal.RequireFromString("75.00"), StockUnits: 40, StockValue: decimal.RequireFromString("120.00")},
		{CategoryID: "c2", Name: "Panadería", ProductCount: 2, UnitsSold: 5, Revenue: decimal.RequireFromString("25.00"), StockUnits: 10, StockValue: decimal.RequireFromString("15.00")},
		{CategoryID: "c3", Name: "Limpieza", ProductCount: 4, UnitsSold: 0, Revenue: decimal.Zero, StockUnits: 30, StockValue: decimal.RequireFromString("60.00")},
	}}
	uc := reports.NewReportUseCase(repo, nil, nil, nil)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	out, err := uc.CategoryReport(context.Background(), from, to)
	require.NoError(t, err)

	require.Len(t, out.Categories, 3)
	assert.Equal(t, "Bebidas", out.Categories[0].Name)
	assert.True(t, out.Categories[0].Share.Equal(decimal.RequireFromString("75")), "share = %s", out.Categories[0].Share)
	assert.True(t, out.Categories[1].Share.Equal(decimal.RequireFromString("25")))
	assert.True(t, out.Categories[2].Share.IsZero(), "categoría sin ventas tiene participación cero")
	assert.Equal(t, 40, out.Categories[0].StockUnits)
	assert.True(t, out.Categories[0].StockValue.Equal(decimal.RequireFromString("120.00")))
}

func TestCategoryReportNoSales(t *testing.T) {
	repo := &fakeReportRepo{categories: []repository.CategoryPerformanceResult{
		{CategoryID: "c1", Name: "Bebidas", Revenue: decimal.Zero},
	}}
	uc := reports.NewReportUseCase(repo, nil, nil, nil)

	out, err := uc.CategoryReport(context.Background(), time.Now().AddDate(0, 0, -30), time.Now())
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	assert.True(t, out.Categories[0].Share.IsZero(), "sin ingresos no se divide entre cero")
}
