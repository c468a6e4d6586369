package purchasing

import (
	"context"
	"time"

	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// ReceiveOrderUseCase finaliza una orden pendiente: transición pending ->
// received, un movimiento IN por línea recibida y suma de stock, en una sola
// transacción.
type ReceiveOrderUseCase struct {
	txRunner     PurchaseTxRunner
	purchaseRepo repository.PurchaseRepository
}

// NewReceiveOrderUseCase construye el caso de uso.
func NewReceiveOrderUseCase(txRunner PurchaseTxRunner, purchaseRepo repository.PurchaseRepository) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{txRunner: txRunner, purchaseRepo: purchaseRepo}
}

// Receive aplica las cantidades recibidas y finaliza la orden. Las líneas no
// mencionadas en la solicitud se reciben completas. Una orden que ya no está
// pendiente devuelve ErrConflict sin emitir instrucciones.
func (uc *ReceiveOrderUseCase) Receive(ctx context.Context, userID, purchaseID string, in dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error) {
	if purchaseID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}

	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(purchaseID)
	if err != nil {
		return nil, err
	}

	session, err := NewReceivingSession(purchase, items)
	if err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if err := session.SetReceivedQuantity(it.ItemID, it.ReceivedQuantity); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	movements := session.Instructions(in.Notes, userID, now)

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// La transición revalida el estado dentro de la tx: si otra sesión ya
		// finalizó o canceló la orden, UpdateStatus devuelve ErrConflict.
		if err := purchaseRepo.UpdateStatus(purchaseID, entity.PurchaseStatusPending, entity.PurchaseStatusReceived); err != nil {
			return err
		}
		for _, line := range session.Lines() {
			if err := purchaseRepo.UpdateItemReceived(line.ItemID, line.Received); err != nil {
				return err
			}
		}
		for _, mov := range movements {
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			p, err := productRepo.GetForUpdate(mov.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateStock(p.ID, p.StockQuantity+mov.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	purchase.Status = entity.PurchaseStatusReceived
	purchase.UpdatedAt = now
	resp := toPurchaseResponse(purchase, nil, "")
	resp.ReceivedValue = session.ReceivedValue()
	for _, line := range session.Lines() {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:               line.ItemID,
			ProductID:        line.ProductID,
			Quantity:         line.Ordered,
			UnitCost:         line.UnitCost,
			TotalCost:        line.UnitCost.Mul(decimalFromInt(line.Ordered)),
			ReceivedQuantity: line.Received,
		})
	}
	return resp, nil
}
