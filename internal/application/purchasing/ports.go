package purchasing

import (
	"context"

	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La recepción de una orden (cambio de estado,
// movimientos IN y suma de stock) se confirma o revierte como una sola unidad.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
