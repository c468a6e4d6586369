package pos

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

// CheckoutUseCase cobra un carrito: valida el pago, crea la venta con sus
// líneas, registra un movimiento OUT por línea y descuenta el stock, todo en
// una sola transacción. Si cualquier escritura falla se revierte el conjunto.
type CheckoutUseCase struct {
	txRunner   SaleTxRunner
	salePrefix string
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner SaleTxRunner, salePrefix string) *CheckoutUseCase {
	if salePrefix == "" {
		salePrefix = "SALE"
	}
	return &CheckoutUseCase{txRunner: txRunner, salePrefix: salePrefix}
}

// Checkout procesa el cobro. Para pago en efectivo exige
// amountReceived >= (total - descuento); si no, ErrInsufficientPayment.
// El stock se verifica con la fila bloqueada (SELECT FOR UPDATE): dos cajas
// no pueden sobrevender el mismo producto.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodDigital:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	saleNumber := fmt.Sprintf("%s-%d", uc.salePrefix, now.Unix())

	var sale *entity.Sale
	var saleItems []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// 1) Reconstruir el carrito con las filas bloqueadas. El motor valida
		// stock por línea; cantidades duplicadas del mismo producto se acumulan.
		cart := NewCart()
		products := make(map[string]*entity.Product)
		for _, item := range in.Items {
			p, ok := products[item.ProductID]
			if !ok {
				var err error
				p, err = productRepo.GetForUpdate(item.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return domain.ErrNotFound
				}
				products[item.ProductID] = p
			}
			target := item.Quantity
			if line, ok := cart.Line(p.ID); ok {
				target += line.Quantity
			}
			if err := cart.AddItem(p); err != nil {
				return err
			}
			if err := cart.UpdateQuantity(p, target); err != nil {
				return err
			}
		}

		// 2) Totales y validación de pago (antes de cualquier escritura)
		totals := cart.Totals()
		finalTotal := totals.Total.Sub(in.DiscountAmount)
		change := decimal.Zero
		received := in.AmountReceived
		if in.PaymentMethod == entity.PaymentMethodCash {
			if received.LessThan(finalTotal) {
				return domain.ErrInsufficientPayment
			}
			change = received.Sub(finalTotal)
		} else {
			received = finalTotal
		}

		// 3) Cabecera de la venta
		sale = &entity.Sale{
			ID:             saleID,
			SaleNumber:     saleNumber,
			CustomerName:   in.CustomerName,
			CustomerEmail:  in.CustomerEmail,
			CustomerPhone:  in.CustomerPhone,
			Subtotal:       totals.Subtotal,
			TaxAmount:      totals.Tax,
			DiscountAmount: in.DiscountAmount,
			TotalAmount:    finalTotal,
			PaymentMethod:  in.PaymentMethod,
			PaymentStatus:  entity.PaymentStatusCompleted,
			AmountReceived: received,
			ChangeAmount:   change,
			UserID:         userID,
			CreatedAt:      now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// 4) Una línea y un movimiento OUT por línea del carrito; el stock se
		// descuenta aquí mismo en lugar de delegarse a un trigger externo.
		for _, line := range cart.Lines() {
			saleItem := &entity.SaleItem{
				ID:         uuid.New().String(),
				SaleID:     saleID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.Total,
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			saleItems = append(saleItems, saleItem)

			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     line.ProductID,
				Type:          entity.MovementTypeOut,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   saleID,
				Notes:         fmt.Sprintf("Sale %s", saleNumber),
				UserID:        userID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}

			p := products[line.ProductID]
			if err := productRepo.UpdateStock(p.ID, p.StockQuantity-line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, saleItems, nil), nil
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem, names map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		CustomerName:   s.CustomerName,
		CustomerEmail:  s.CustomerEmail,
		CustomerPhone:  s.CustomerPhone,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		PaymentMethod:  s.PaymentMethod,
		PaymentStatus:  s.PaymentStatus,
		AmountReceived: s.AmountReceived,
		ChangeAmount:   s.ChangeAmount,
		CreatedAt:      s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Name:       names[it.ProductID],
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return resp
}
