package pos

import (
	"github.com/shopspring/decimal"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

// TaxRate tasa de impuesto fija del POS (10%).
var TaxRate = decimal.RequireFromString("0.10")

// CartLine una línea del carrito: producto + cantidad + total de línea.
// Total se recalcula en cada mutación (Quantity × UnitPrice).
type CartLine struct {
	ProductID string
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
	Unit      string
	Quantity  int
	Total     decimal.Decimal
}

// Totals totales derivados del carrito.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Cart carrito de venta en memoria. Mantiene las líneas en orden de inserción.
// Las validaciones de stock son optimistas: la verificación definitiva ocurre
// dentro de la transacción de checkout con la fila bloqueada.
type Cart struct {
	lines []*CartLine
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID string) *CartLine {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// AddItem agrega una unidad del producto. Si la línea existe, incrementa en 1,
// salvo que eso supere el stock disponible: en ese caso rechaza con
// ErrInsufficientStock sin cambiar el estado. Producto sin stock no entra.
func (c *Cart) AddItem(p *entity.Product) error {
	if line := c.find(p.ID); line != nil {
		if line.Quantity >= p.StockQuantity {
			return domain.ErrInsufficientStock
		}
		line.Quantity++
		// El precio de la línea es el capturado al agregarla por primera vez;
		// un cambio de precio posterior no altera las líneas ya en el carrito.
		line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		return nil
	}
	if p.StockQuantity < 1 {
		return domain.ErrInsufficientStock
	}
	c.lines = append(c.lines, &CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.SellingPrice,
		Unit:      p.Unit,
		Quantity:  1,
		Total:     p.SellingPrice,
	})
	return nil
}

// UpdateQuantity fija la cantidad de la línea del producto. Cantidad <= 0
// elimina la línea; cantidad mayor al stock rechaza sin cambiar el estado.
// Si no existe línea para el producto devuelve ErrNotFound.
func (c *Cart) UpdateQuantity(p *entity.Product, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(p.ID)
		return nil
	}
	line := c.find(p.ID)
	if line == nil {
		return domain.ErrNotFound
	}
	if quantity > p.StockQuantity {
		return domain.ErrInsufficientStock
	}
	line.Quantity = quantity
	line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// RemoveItem elimina la línea del producto (no-op si no existe).
func (c *Cart) RemoveItem(productID string) {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Line devuelve la línea del producto, si existe.
func (c *Cart) Line(productID string) (CartLine, bool) {
	if l := c.find(productID); l != nil {
		return *l, true
	}
	return CartLine{}, false
}

// Totals calcula subtotal, impuesto (10% fijo) y total. Función pura:
// idempotente e independiente del orden de las líneas.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Total)
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
