package repository

import "github.com/dfonseca/stockmanager-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error)
	List(status string, limit, offset int) ([]*entity.Purchase, error)
	// UpdateStatus cambia el estado solo si el actual coincide con fromStatus
	// (guarda optimista de la transición pending -> received/cancelled).
	// Devuelve domain.ErrConflict si la fila ya no está en fromStatus.
	UpdateStatus(id, fromStatus, toStatus string) error
	UpdateItemReceived(itemID string, receivedQuantity int) error
}
