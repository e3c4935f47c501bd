package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/postgres"
	"github.com/Shreyas100100/Expense-Tracker/pkg/config"
)

// Estas pruebas necesitan una base real: DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
// Cada prueba crea sus propios datos con IDs nuevos; no se borra nada.
func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	cfg := config.DBConfig{DatabaseURL: url}
	require.NoError(t, postgres.RunMigrations(cfg))

	pool, err := postgres.NewPool(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCustomer(t *testing.T, repo *postgres.CustomerRepo) *entity.Customer {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Customer{ID: uuid.NewString(), Name: "Ravi Stores", ShopNo: "12", Phone: "9876543210", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func newItem(t *testing.T, repo *postgres.ItemRepo, price string) *entity.Item {
	t.Helper()
	now := time.Now().UTC()
	it := &entity.Item{ID: uuid.NewString(), Name: "Tea", Price: dec(price), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), it))
	return it
}

func TestPostgres_FacturaConLineasYFiltroPorCliente(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	customers, items, bills := postgres.NewCustomerRepository(pool), postgres.NewItemRepository(pool), postgres.NewBillRepository(pool)
	runner := postgres.NewTxRunner(pool)

	c := newCustomer(t, customers)
	tea, samosa := newItem(t, items, "12.50"), newItem(t, items, "15.00")
	uc := billing.NewBillUseCase(runner, customers, items, bills, nil, time.UTC)

	out, err := uc.Create(ctx, dto.CreateBillRequest{
		CustomerID: c.ID,
		Lines: []dto.BillLineRequest{
			{ItemID: tea.ID, Quantity: dec("2")},
			{ItemID: samosa.ID, Quantity: dec("1.5")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("47.50").Equal(out.Bill.Total))
	assert.True(t, dec("47.50").Equal(out.CustomerBalance))

	list, err := bills.List(ctx, repository.BillFilter{CustomerID: c.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Lines, 2)
	assert.Equal(t, 1, list[0].Lines[0].Position)
	assert.Equal(t, "Tea", list[0].Lines[0].ItemName)
	assert.True(t, dec("22.50").Equal(list[0].Lines[1].Subtotal))

	got, err := bills.GetByID(ctx, out.Bill.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Lines, 2)
}

func TestPostgres_ErroresDeDominio(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	customers, items := postgres.NewCustomerRepository(pool), postgres.NewItemRepository(pool)
	runner := postgres.NewTxRunner(pool)

	// ID mal formado: no encontrado, no error de base
	c, err := customers.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, c)
	it, err := items.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, it)

	now := time.Now().UTC()
	err = items.Create(ctx, &entity.Item{ID: uuid.NewString(), Name: "Oro", Price: dec("10000000000000"), CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// FK de facturas: borrar un cliente con movimientos es conflicto
	owner := newCustomer(t, customers)
	tea := newItem(t, items, "10")
	_, err = billing.NewBillUseCase(runner, customers, items, postgres.NewBillRepository(pool), nil, time.UTC).
		Create(ctx, dto.CreateBillRequest{CustomerID: owner.ID, Lines: []dto.BillLineRequest{{ItemID: tea.ID, Quantity: dec("1")}}})
	require.NoError(t, err)
	assert.ErrorIs(t, customers.Delete(ctx, owner.ID), domain.ErrConflict)
}

func TestPostgres_FacturasYConciliacionesConcurrentesSinDrift(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	customers, items := postgres.NewCustomerRepository(pool), postgres.NewItemRepository(pool)
	bills, payments := postgres.NewBillRepository(pool), postgres.NewPaymentRepository(pool)
	runner := postgres.NewTxRunner(pool)

	c := newCustomer(t, customers)
	tea := newItem(t, items, "12.50")
	billUC := billing.NewBillUseCase(runner, customers, items, bills, nil, time.UTC)
	paymentUC := billing.NewPaymentUseCase(runner, customers, bills, payments, nil, time.UTC)
	customerUC := billing.NewCustomerUseCase(customers, bills, payments, runner, nil)

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := billUC.Create(ctx, dto.CreateBillRequest{
				CustomerID: c.ID,
				Lines:      []dto.BillLineRequest{{ItemID: tea.ID, Quantity: dec("2")}},
			})
			return err
		})
		g.Go(func() error {
			_, err := customerUC.Reconcile(ctx, c.ID)
			return err
		})
	}
	g.Go(func() error {
		_, err := paymentUC.Accept(ctx, dto.AcceptPaymentRequest{CustomerID: c.ID, AmountReceived: dec("40")})
		return err
	})
	require.NoError(t, g.Wait())

	got, err := customerUC.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, dec("210").Equal(got.Balance), "10 x 25 - 40")
	assert.True(t, got.Drift.IsZero(), "almacenado=%s derivado=%s", got.StoredBalance, got.Balance)
}
