package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/memory"
)

var (
	ist   = time.FixedZone("IST", 5*3600+1800)
	today = time.Date(2024, 3, 15, 18, 45, 0, 0, ist)
)

const (
	ashaID   = "11111111-1111-4111-8111-111111111111"
	balaID   = "22222222-2222-4222-8222-222222222222"
	chitraID = "33333333-3333-4333-8333-333333333333"
)

// staleCountCustomers simula un Count leído antes de un alta concurrente.
type staleCountCustomers struct {
	repository.CustomerRepository
}

func (staleCountCustomers) Count(context.Context) (int, error) { return 1, nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seed: Asha con facturas en marzo 2023, marzo 2024 y hoy; Bala con un pago en abril 2024; Chitra sin movimientos.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for id, name := range map[string]string{ashaID: "Asha", balaID: "Bala", chitraID: "Chitra"} {
		require.NoError(t, s.Customers().Create(ctx, &entity.Customer{ID: id, Name: name, Phone: "9876543210"}))
	}
	bills := []*entity.Bill{
		{ID: "b1", CustomerID: ashaID, CustomerName: "Asha", Total: dec("100"), Date: time.Date(2023, 3, 10, 12, 0, 0, 0, ist),
			Lines: []entity.BillLine{{ID: "l1", BillID: "b1", ItemName: "Tea", ItemPrice: dec("10"), Quantity: dec("10"), Subtotal: dec("100")}}},
		{ID: "b2", CustomerID: ashaID, CustomerName: "Asha", Total: dec("40"), Date: time.Date(2024, 3, 2, 9, 0, 0, 0, ist),
			Lines: []entity.BillLine{{ID: "l2", BillID: "b2", ItemName: "Coffee", ItemPrice: dec("20"), Quantity: dec("2"), Subtotal: dec("40")}}},
		{ID: "b3", CustomerID: ashaID, CustomerName: "Asha", Total: dec("15.50"), Date: today.Add(-2 * time.Hour),
			Lines: []entity.BillLine{{ID: "l3", BillID: "b3", ItemName: "Samosa", ItemPrice: dec("15.50"), Quantity: dec("1"), Subtotal: dec("15.50")}}},
	}
	for _, b := range bills {
		require.NoError(t, s.Bills().Create(ctx, b))
	}
	require.NoError(t, s.Payments().Create(ctx, &entity.Payment{
		ID: "p1", CustomerID: balaID, Amount: dec("25"), ReceivedAt: time.Date(2024, 4, 3, 11, 0, 0, 0, ist),
	}))
	require.NoError(t, s.Payments().Create(ctx, &entity.Payment{
		ID: "p2", CustomerID: ashaID, Amount: dec("30"), ReceivedAt: time.Date(2024, 3, 5, 11, 0, 0, 0, ist),
	}))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_GetSummary(t *testing.T) {
	s := seed(t)
	uc := NewDashboardUseCase(s.Customers(), s.Bills(), s.Payments(), ist)
	uc.now = func() time.Time { return today }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Viernes 15 de Marzo de 2024", out.DateLabel)
	assert.Equal(t, 3, out.TotalCustomers)
	assert.True(t, dec("155.50").Equal(out.TotalBillAmounts))
	assert.Equal(t, 2, out.TotalPayments)
	assert.True(t, dec("55").Equal(out.TotalPaidAmount))
	assert.True(t, dec("100.50").Equal(out.Outstanding))

	require.Len(t, out.TodaysPurchases, 1)
	assert.Equal(t, "Asha", out.TodaysPurchases[0].CustomerName)
	assert.Equal(t, "16:45", out.TodaysPurchases[0].PurchaseTime)
}

func TestDateLabel(t *testing.T) {
	assert.Equal(t, "Domingo 18 de Octubre de 2026", dateLabel(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_MonthlyTotalsMesSinAño(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(s.Customers(), s.Bills(), s.Payments(), ist)

	out, err := uc.MonthlyTotals(context.Background(), ledger.Period{Month: 3}, "")
	require.NoError(t, err)

	require.Len(t, out.Rows, 1, "Bala pagó en abril y Chitra no tiene movimientos")
	row := out.Rows[0]
	assert.Equal(t, "Asha", row.CustomerName)
	assert.True(t, dec("155.50").Equal(row.TotalBilled), "marzo de 2023 y de 2024")
	assert.True(t, dec("30").Equal(row.TotalPaid))
	assert.True(t, dec("125.50").Equal(row.Net))
}

func TestHistory_MonthlyTotalsMesYAño(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(s.Customers(), s.Bills(), s.Payments(), ist)

	out, err := uc.MonthlyTotals(context.Background(), ledger.Period{Year: 2024, Month: 3}, "")
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.True(t, dec("55.50").Equal(out.TotalBilled))

	all, err := uc.MonthlyTotals(context.Background(), ledger.Period{}, "")
	require.NoError(t, err)
	require.Len(t, all.Rows, 2)
	assert.Equal(t, "Asha", all.Rows[0].CustomerName)
	assert.Equal(t, "Bala", all.Rows[1].CustomerName)
	assert.True(t, dec("-25").Equal(all.Rows[1].Net))
}

func TestHistory_MonthlyTotalsClienteSinMovimientos(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(s.Customers(), s.Bills(), s.Payments(), ist)

	out, err := uc.MonthlyTotals(context.Background(), ledger.Period{Month: 3}, chitraID)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.True(t, out.Rows[0].Net.IsZero())

	_, err = uc.MonthlyTotals(context.Background(), ledger.Period{}, "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_CustomerHistoryOrdenado(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(s.Customers(), s.Bills(), s.Payments(), ist)

	out, err := uc.CustomerHistory(context.Background(), ashaID, ledger.Period{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, out.Entries, 3)

	assert.Equal(t, "Coffee", out.Entries[0].ItemName)
	assert.Equal(t, ledger.PaymentDescription, out.Entries[1].ItemName)
	assert.True(t, dec("-30").Equal(out.Entries[1].Total))
	assert.Equal(t, "Samosa", out.Entries[2].ItemName)
	assert.True(t, dec("25.50").Equal(out.Net))
}

func TestHistory_MonthlyTotalsNoDependeDeCount(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(staleCountCustomers{s.Customers()}, s.Bills(), s.Payments(), ist)

	all, err := uc.MonthlyTotals(context.Background(), ledger.Period{}, "")
	require.NoError(t, err)
	require.Len(t, all.Rows, 2, "Bala aparece aunque Count diga 1")
	assert.Equal(t, "Asha", all.Rows[0].CustomerName)
	assert.Equal(t, "Bala", all.Rows[1].CustomerName)
}

func TestHistory_IDMalFormadoEsNoEncontrado(t *testing.T) {
	s := seed(t)
	uc := NewHistoryUseCase(s.Customers(), s.Bills(), s.Payments(), ist)

	_, err := uc.CustomerHistory(context.Background(), "abc", ledger.Period{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.MonthlyTotals(context.Background(), ledger.Period{}, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
