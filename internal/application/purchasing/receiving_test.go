package purchasing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfonseca/stockmanager-api/internal/application/purchasing"
	"github.com/dfonseca/stockmanager-api/internal/domain"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

func pendingPurchase() *entity.Purchase {
	return &entity.Purchase{
		ID:             "po-1",
		PurchaseNumber: "PO-1700000000",
		SupplierID:     "sup-1",
		Status:         entity.PurchaseStatusPending,
	}
}

// orden con dos líneas: 10 × 2.00 y 5 × 4.00
func purchaseItems() []*entity.PurchaseItem {
	return []*entity.PurchaseItem{
		{ID: "it-1", PurchaseID: "po-1", ProductID: "p1", Quantity: 10, UnitCost: decimal.RequireFromString("2.00")},
		{ID: "it-2", PurchaseID: "po-1", ProductID: "p2", Quantity: 5, UnitCost: decimal.RequireFromString("4.00")},
	}
}

func TestReceivingSessionDefaultsToOrdered(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)

	for _, line := range session.Lines() {
		assert.Equal(t, line.Ordered, line.Received, "la recepción completa es el valor por defecto")
	}
	// 10×2.00 + 5×4.00 = 40.00
	assert.True(t, session.ReceivedValue().Equal(decimal.RequireFromString("40.00")))
}

func TestReceivingSessionRejectsNonPending(t *testing.T) {
	for _, status := range []string{entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled} {
		p := pendingPurchase()
		p.Status = status
		_, err := purchasing.NewReceivingSession(p, purchaseItems())
		assert.ErrorIs(t, err, domain.ErrConflict, "status %s es terminal", status)
	}
}

func TestReceivingSessionRejectsEmpty(t *testing.T) {
	_, err := purchasing.NewReceivingSession(pendingPurchase(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = purchasing.NewReceivingSession(nil, purchaseItems())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceivingSessionPartialValue(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)

	// recibido [10, 3] → 10×2.00 + 3×4.00 = 32.00
	require.NoError(t, session.SetReceivedQuantity("it-1", 10))
	require.NoError(t, session.SetReceivedQuantity("it-2", 3))

	assert.True(t, session.ReceivedValue().Equal(decimal.RequireFromString("32.00")),
		"valor recibido = %s", session.ReceivedValue())
}

func TestReceivingSessionClampsQuantity(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)

	// por encima de lo pedido: se acota a lo pedido
	require.NoError(t, session.SetReceivedQuantity("it-1", 99))
	lines := session.Lines()
	assert.Equal(t, 10, lines[0].Received)

	// negativo: se acota a cero
	require.NoError(t, session.SetReceivedQuantity("it-2", -4))
	lines = session.Lines()
	assert.Equal(t, 0, lines[1].Received)
}

func TestReceivingSessionUnknownLine(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)
	assert.ErrorIs(t, session.SetReceivedQuantity("no-existe", 1), domain.ErrNotFound)
}

func TestReceivingInstructions(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)
	require.NoError(t, session.SetReceivedQuantity("it-2", 3))

	now := time.Now()
	movs := session.Instructions("camión de la mañana", "user-1", now)
	require.Len(t, movs, 2)

	assert.Equal(t, "p1", movs[0].ProductID)
	assert.Equal(t, 10, movs[0].Quantity)
	assert.Equal(t, "p2", movs[1].ProductID)
	assert.Equal(t, 3, movs[1].Quantity)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeIn, m.Type)
		assert.Equal(t, entity.ReferenceTypePurchase, m.ReferenceType)
		assert.Equal(t, "po-1", m.ReferenceID)
		assert.Equal(t, "Purchase PO-1700000000 - camión de la mañana", m.Notes)
		assert.Equal(t, "user-1", m.UserID)
	}
}

func TestReceivingInstructionsSkipZeroLines(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)
	require.NoError(t, session.SetReceivedQuantity("it-1", 0))

	movs := session.Instructions("", "user-1", time.Now())
	require.Len(t, movs, 1, "una línea en cero no genera movimiento")
	assert.Equal(t, "p2", movs[0].ProductID)
	assert.Equal(t, "Purchase PO-1700000000", movs[0].Notes)
}

func TestReceivingInstructionsAllZero(t *testing.T) {
	session, err := purchasing.NewReceivingSession(pendingPurchase(), purchaseItems())
	require.NoError(t, err)
	require.NoError(t, session.SetReceivedQuantity("it-1", 0))
	require.NoError(t, session.SetReceivedQuantity("it-2", 0))

	assert.Empty(t, session.Instructions("", "user-1", time.Now()))
	assert.True(t, session.ReceivedValue().IsZero())
}
