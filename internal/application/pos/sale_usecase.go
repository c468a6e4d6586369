package pos

import (
	"context"
	"time"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// SaleUseCase lectura de ventas y generación de recibos.
type SaleUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	receipts    ReceiptGenerator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, receipts ReceiptGenerator) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, productRepo: productRepo, receipts: receipts}
}

// GetByID devuelve una venta con sus líneas.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for _, it := range items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		p, _ := uc.productRepo.GetByID(it.ProductID)
		if p != nil {
			names[it.ProductID] = p.Name
		}
	}
	return toSaleResponse(sale, items, names), nil
}

// List lista ventas en un rango de fechas (opcional) con paginación.
func (uc *SaleUseCase) List(from, to *time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s, nil, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ReceiptPDF genera el recibo imprimible de una venta.
func (uc *SaleUseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product)
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, _ := uc.productRepo.GetByID(it.ProductID)
		if p != nil {
			products[it.ProductID] = p
		}
	}
	return uc.receipts.GenerateReceipt(ctx, sale, items, products)
}
