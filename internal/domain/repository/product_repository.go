package repository

import "github.com/dfonseca/stockmanager-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock solo tienen sentido dentro de una transacción
// (ver TxRunner): bloquean la fila para serializar los cambios de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetByCode busca por barcode o SKU con coincidencia exacta (case-sensitive).
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto con SELECT ... FOR UPDATE.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock resultante (calculado por el caso de uso bajo lock).
	UpdateStock(productID string, quantity int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
}
