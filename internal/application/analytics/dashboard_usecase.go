// Package analytics contiene los casos de uso de lectura: resumen de inicio
// e historial mensual del libro de clientes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// DashboardUseCase genera el resumen de la pantalla de inicio.
type DashboardUseCase struct {
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	paymentRepo  repository.PaymentRepository
	loc          *time.Location
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		customerRepo: customerRepo,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. Count de clientes        → TotalCustomers
//  2. Todas las facturas        → TotalBillAmounts
//  3. Todos los pagos           → TotalPayments + TotalPaidAmount
//  4. Facturas de hoy           → TodaysPurchases
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)
	todayStart, todayEnd := ledger.DayBounds(now, uc.loc)

	var (
		customers int
		bills     []*entity.Bill
		payments  []*entity.Payment
		today     []*entity.Bill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.customerRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		customers = n
		return nil
	})
	g.Go(func() error {
		list, err := uc.billRepo.List(gctx, repository.BillFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: facturas: %w", err)
		}
		bills = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.paymentRepo.List(gctx, repository.PaymentFilter{})
		if err != nil {
			return fmt.Errorf("dashboard: pagos: %w", err)
		}
		payments = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.billRepo.List(gctx, repository.BillFilter{From: todayStart, To: todayEnd})
		if err != nil {
			return fmt.Errorf("dashboard: facturas de hoy: %w", err)
		}
		today = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := ledger.Summarize(bills, payments, ledger.Period{}, nil)

	purchases := make([]dto.TodayPurchaseDTO, 0, len(today))
	for _, b := range today {
		purchases = append(purchases, dto.TodayPurchaseDTO{
			BillID:       b.ID,
			CustomerName: b.CustomerName,
			PurchaseTime: b.Date.In(uc.loc).Format("15:04"),
			BillAmount:   b.Total,
		})
	}

	return &dto.DashboardSummaryDTO{
		DateLabel:        dateLabel(now),
		TotalCustomers:   customers,
		TotalBillAmounts: totals.Billed.Round(ledger.MoneyPlaces),
		TotalPayments:    totals.Payments,
		TotalPaidAmount:  totals.Paid.Round(ledger.MoneyPlaces),
		Outstanding:      totals.Balance().Round(ledger.MoneyPlaces),
		TodaysPurchases:  purchases,
	}, nil
}

var (
	weekdays = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	months   = [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
)

// dateLabel devuelve la fecha legible, ej: "Lunes 18 de Octubre de 2026".
func dateLabel(t time.Time) string {
	return fmt.Sprintf("%s %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}
