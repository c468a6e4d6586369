package pos

import (
	"github.com/dfonseca/stockmanager-api/internal/application/dto"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/repository"
)

// CartUseCase valida el carrito del POS contra el catálogo y calcula totales.
// Es el camino del escáner: la UI manda sus líneas más el código leído y
// recibe el carrito resultante, con el stock verificado línea a línea.
type CartUseCase struct {
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{products: products}
}

// Preview reconstruye el carrito con precios y stock actuales del catálogo y,
// si viene un código escaneado, agrega una unidad de ese producto. Las
// validaciones son optimistas (la definitiva ocurre en el checkout).
func (uc *CartUseCase) Preview(in dto.CartPreviewRequest) (*dto.CartPreviewResponse, error) {
	if len(in.Items) == 0 && in.Code == "" {
		return nil, domain.ErrInvalidInput
	}

	svc := NewCartService(uc.products)
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		// Líneas repetidas del mismo producto se acumulan, igual que en checkout.
		target := item.Quantity
		if line, ok := svc.Cart().Line(item.ProductID); ok {
			target += line.Quantity
		}
		if err := svc.AddByID(item.ProductID); err != nil {
			return nil, err
		}
		if err := svc.UpdateQuantity(item.ProductID, target); err != nil {
			return nil, err
		}
	}
	if in.Code != "" {
		if _, err := svc.AddByCode(in.Code); err != nil {
			return nil, err
		}
	}

	totals := svc.Totals()
	resp := &dto.CartPreviewResponse{
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
	for _, line := range svc.Cart().Lines() {
		resp.Items = append(resp.Items, dto.CartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			SKU:       line.SKU,
			UnitPrice: line.UnitPrice,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			Total:     line.Total,
		})
	}
	return resp, nil
}
