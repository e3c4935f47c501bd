package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/memory"
)

func newCustomer(t *testing.T, s *memory.Store, id, name string) {
	t.Helper()
	require.NoError(t, s.Customers().Create(context.Background(), &entity.Customer{
		ID: id, Name: name, ShopNo: "1", Phone: "9876543210", BillAmount: decimal.Zero,
	}))
}

func TestRunLedger_RollbackAlFallar(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	newCustomer(t, s, "c1", "Ravi")

	boom := errors.New("boom")
	err := s.RunLedger(ctx, func(customers repository.CustomerRepository, bills repository.BillRepository, _ repository.PaymentRepository) error {
		require.NoError(t, bills.Create(ctx, &entity.Bill{ID: "b1", CustomerID: "c1", Total: decimal.NewFromInt(50), Date: time.Now()}))
		_, err := customers.AdjustBalance(ctx, "c1", decimal.NewFromInt(50))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	b, err := s.Bills().GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, b, "la factura no debe quedar tras el rollback")

	c, err := s.Customers().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.BillAmount.IsZero())
}

func TestRunLedger_CommitConcurrenteSinPerderSaldo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	newCustomer(t, s, "c1", "Ravi")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunLedger(ctx, func(customers repository.CustomerRepository, _ repository.BillRepository, _ repository.PaymentRepository) error {
				_, err := customers.AdjustBalance(ctx, "c1", decimal.NewFromInt(2))
				return err
			})
		}()
	}
	wg.Wait()

	c, err := s.Customers().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.BillAmount.Equal(decimal.NewFromInt(100)), "got %s", c.BillAmount)
}

func TestCustomerRepo_DeleteConFacturasEsConflicto(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	newCustomer(t, s, "c1", "Ravi")
	newCustomer(t, s, "c2", "Asha")
	require.NoError(t, s.Payments().Create(ctx, &entity.Payment{ID: "p1", CustomerID: "c1", Amount: decimal.NewFromInt(5), ReceivedAt: time.Now()}))

	assert.ErrorIs(t, s.Customers().Delete(ctx, "c1"), domain.ErrConflict)
	assert.NoError(t, s.Customers().Delete(ctx, "c2"))
	assert.ErrorIs(t, s.Customers().Delete(ctx, "c2"), domain.ErrNotFound)
}

func TestCustomerRepo_ListOrdenYPaginacion(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	newCustomer(t, s, "c1", "Zoya")
	newCustomer(t, s, "c2", "Asha")
	newCustomer(t, s, "c3", "Manoj")

	list, err := s.Customers().List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Asha", list[0].Name)
	assert.Equal(t, "Manoj", list[1].Name)

	list, err = s.Customers().List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zoya", list[0].Name)

	list, err = s.Customers().List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBillRepo_ListFiltraPorRangoYCliente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	newCustomer(t, s, "c1", "Ravi")
	newCustomer(t, s, "c2", "Asha")

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, c := range []string{"c1", "c2", "c1"} {
		require.NoError(t, s.Bills().Create(ctx, &entity.Bill{
			ID:         string(rune('a' + i)),
			CustomerID: c,
			Total:      decimal.NewFromInt(int64(10 * (i + 1))),
			Date:       base.AddDate(0, 0, i*30),
			Lines:      []entity.BillLine{{ItemName: "Tea"}},
		}))
	}

	all, err := s.Bills().List(ctx, repository.BillFilter{CustomerID: "c1"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Date.Before(all[1].Date))

	march, err := s.Bills().List(ctx, repository.BillFilter{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "a", march[0].ID)

	// las líneas devueltas son copias
	march[0].Lines[0].ItemName = "cambiado"
	again, err := s.Bills().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Tea", again.Lines[0].ItemName)
}

func TestBillRepo_CreateSinClienteEsNotFound(t *testing.T) {
	s := memory.NewStore()
	err := s.Bills().Create(context.Background(), &entity.Bill{ID: "b1", CustomerID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "a@b.com"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{ID: "u2", Email: "A@B.com"}), domain.ErrEmailAlreadyExists)

	u, err := s.Users().FindByEmail(ctx, "A@b.COM")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	u, err = s.Users().FindByEmail(ctx, "x@y.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
