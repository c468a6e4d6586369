package purchasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

// ReceivingLine copia de trabajo de una línea de la orden: la cantidad pedida
// y el costo unitario son inmutables, la recibida es ajustable.
type ReceivingLine struct {
	ItemID    string
	ProductID string
	Ordered   int
	UnitCost  decimal.Decimal
	Received  int
}

// ReceivingSession reconcilia cantidades pedidas contra recibidas para una
// orden pendiente. Solo se construye sobre órdenes en estado pending; cualquier
// otro estado es terminal y de solo lectura.
type ReceivingSession struct {
	purchase *entity.Purchase
	lines    []*ReceivingLine
}

// NewReceivingSession crea la sesión. Las cantidades recibidas inician iguales
// a las pedidas (recepción completa por defecto). Devuelve ErrConflict si la
// orden no está pendiente.
func NewReceivingSession(purchase *entity.Purchase, items []*entity.PurchaseItem) (*ReceivingSession, error) {
	if purchase == nil || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if purchase.Status != entity.PurchaseStatusPending {
		return nil, domain.ErrConflict
	}
	s := &ReceivingSession{purchase: purchase}
	for _, it := range items {
		s.lines = append(s.lines, &ReceivingLine{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Ordered:   it.Quantity,
			UnitCost:  it.UnitCost,
			Received:  it.Quantity,
		})
	}
	return s, nil
}

func (s *ReceivingSession) find(itemID string) *ReceivingLine {
	for _, l := range s.lines {
		if l.ItemID == itemID {
			return l
		}
	}
	return nil
}

// SetReceivedQuantity fija la cantidad recibida de una línea, acotada al rango
// [0, cantidad pedida]. El límite superior se aplica aquí en el motor, no solo
// en el atributo max del input de la UI.
func (s *ReceivingSession) SetReceivedQuantity(itemID string, quantity int) error {
	line := s.find(itemID)
	if line == nil {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		quantity = 0
	}
	if quantity > line.Ordered {
		quantity = line.Ordered
	}
	line.Received = quantity
	return nil
}

// ReceivedValue calcula Σ(recibido × costo unitario). Pura, bajo demanda.
func (s *ReceivingSession) ReceivedValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Received))))
	}
	return total
}

// Lines devuelve una copia de las líneas de la sesión.
func (s *ReceivingSession) Lines() []ReceivingLine {
	out := make([]ReceivingLine, len(s.lines))
	for i, l := range s.lines {
		out[i] = *l
	}
	return out
}

// Instructions produce un movimiento IN por cada línea con cantidad recibida
// mayor a cero, etiquetado con la orden y las notas. Las líneas en cero no
// generan instrucción (pendiente de recibir, no discrepancia).
func (s *ReceivingSession) Instructions(notes, userID string, now time.Time) []*entity.StockMovement {
	movNotes := fmt.Sprintf("Purchase %s", s.purchase.PurchaseNumber)
	if notes != "" {
		movNotes = fmt.Sprintf("%s - %s", movNotes, notes)
	}
	var out []*entity.StockMovement
	for _, l := range s.lines {
		if l.Received <= 0 {
			continue
		}
		out = append(out, &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     l.ProductID,
			Type:          entity.MovementTypeIn,
			Quantity:      l.Received,
			ReferenceType: entity.ReferenceTypePurchase,
			ReferenceID:   s.purchase.ID,
			Notes:         movNotes,
			UserID:        userID,
			CreatedAt:     now,
		})
	}
	return out
}
