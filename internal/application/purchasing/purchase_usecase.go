package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// PurchaseUseCase creación, consulta y cancelación de órdenes de compra.
type PurchaseUseCase struct {
	txRunner       PurchaseTxRunner
	purchaseRepo   repository.PurchaseRepository
	supplierRepo   repository.SupplierRepository
	productRepo    repository.ProductRepository
	purchasePrefix string
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	purchasePrefix string,
) *PurchaseUseCase {
	if purchasePrefix == "" {
		purchasePrefix = "PO"
	}
	return &PurchaseUseCase{
		txRunner:       txRunner,
		purchaseRepo:   purchaseRepo,
		supplierRepo:   supplierRepo,
		productRepo:    productRepo,
		purchasePrefix: purchasePrefix,
	}
}

// Create crea una orden en estado pending. El costo unitario en cero se
// completa con el costo de compra del producto. La cabecera y sus líneas se
// escriben en una sola transacción: un fallo a mitad no deja una orden
// pendiente con líneas parciales.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:             uuid.New().String(),
		PurchaseNumber: fmt.Sprintf("%s-%d", uc.purchasePrefix, now.Unix()),
		SupplierID:     in.SupplierID,
		Status:         entity.PurchaseStatusPending,
		Notes:          in.Notes,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	total := decimal.Zero
	var items []*entity.PurchaseItem
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		unitCost := it.UnitCost
		if unitCost.IsZero() {
			unitCost = p.CostPrice
		}
		lineTotal := unitCost.Mul(decimalFromInt(it.Quantity))
		total = total.Add(lineTotal)
		items = append(items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitCost:   unitCost,
			TotalCost:  lineTotal,
		})
	}
	purchase.TotalAmount = total

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range items {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items, supplier.Name), nil
}

// GetByID devuelve una orden con sus líneas.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(id)
	if err != nil {
		return nil, err
	}
	supplierName := ""
	if supplier, _ := uc.supplierRepo.GetByID(purchase.SupplierID); supplier != nil {
		supplierName = supplier.Name
	}
	return toPurchaseResponse(purchase, items, supplierName), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *PurchaseUseCase) List(status string, limit, offset int) (*dto.PurchaseListResponse, error) {
	switch status {
	case "", entity.PurchaseStatusPending, entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	purchases, err := uc.purchaseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, *toPurchaseResponse(p, nil, ""))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Cancel transición pending -> cancelled. No genera movimientos de stock.
// Una orden ya recibida o cancelada devuelve ErrConflict.
func (uc *PurchaseUseCase) Cancel(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	return uc.purchaseRepo.UpdateStatus(id, entity.PurchaseStatusPending, entity.PurchaseStatusCancelled)
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem, supplierName string) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   supplierName,
		Status:         p.Status,
		TotalAmount:    p.TotalAmount,
		ReceivedValue:  decimal.Zero,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
			ReceivedQuantity: it.ReceivedQuantity,
		})
		resp.ReceivedValue = resp.ReceivedValue.Add(it.UnitCost.Mul(decimalFromInt(it.ReceivedQuantity)))
	}
	return resp
}
