package pos

import (
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// CartService opera un carrito contra el catálogo de productos.
// El repositorio se inyecta explícitamente (nunca estado global) para que el
// motor sea testeable con un catálogo en memoria.
type CartService struct {
	products repository.ProductRepository
	cart     *Cart
}

// NewCartService crea el servicio con un carrito vacío.
func NewCartService(products repository.ProductRepository) *CartService {
	return &CartService{products: products, cart: NewCart()}
}

// Cart expone el carrito subyacente.
func (s *CartService) Cart() *Cart {
	return s.cart
}

// AddByID agrega una unidad del producto por ID.
func (s *CartService) AddByID(productID string) error {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return s.cart.AddItem(p)
}

// AddByCode busca por barcode o SKU (coincidencia exacta, case-sensitive) y
// agrega una unidad. Si no hay producto devuelve ErrNotFound sin tocar el
// carrito. El código vacío nunca coincide.
func (s *CartService) AddByCode(code string) (*entity.Product, error) {
	if code == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.products.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.cart.AddItem(p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateQuantity fija la cantidad de la línea, validando contra el stock actual.
func (s *CartService) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		s.cart.RemoveItem(productID)
		return nil
	}
	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return s.cart.UpdateQuantity(p, quantity)
}

// RemoveItem elimina la línea del producto.
func (s *CartService) RemoveItem(productID string) {
	s.cart.RemoveItem(productID)
}

// Clear vacía el carrito.
func (s *CartService) Clear() {
	s.cart.Clear()
}

// Totals calcula los totales actuales.
func (s *CartService) Totals() Totals {
	return s.cart.Totals()
}
