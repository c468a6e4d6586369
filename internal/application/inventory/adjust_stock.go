package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el movimiento y
// la actualización de stock.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// AdjustStockUseCase ajustes manuales de stock (entrada, salida o fijar
// cantidad exacta) con bloqueo de fila y Commit/Rollback.
type AdjustStockUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, movRepo: movRepo}
}

// Adjust aplica el ajuste: "in" suma, "out" resta (verificando stock
// suficiente con la fila bloqueada), "adjustment" fija la cantidad exacta.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustStockRequest) error {
	if in.ProductID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if in.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		newStock := p.StockQuantity
		switch in.Type {
		case entity.MovementTypeIn:
			newStock += in.Quantity
		case entity.MovementTypeOut:
			if in.Quantity > p.StockQuantity {
				return domain.ErrInsufficientStock
			}
			newStock -= in.Quantity
		case entity.MovementTypeAdjustment:
			newStock = in.Quantity
		}

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			Type:          in.Type,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypeAdjustment,
			Notes:         in.Notes,
			UserID:        userID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.UpdateStock(p.ID, newStock)
	})
}

// ListMovements historial de movimientos, opcionalmente por producto.
func (uc *AdjustStockUseCase) ListMovements(productID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	var movements []*entity.StockMovement
	var err error
	if productID != "" {
		movements, err = uc.movRepo.ListByProduct(productID, limit, offset)
	} else {
		movements, err = uc.movRepo.List(from, to, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.StockMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Notes:         m.Notes,
			UserID:        m.UserID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
