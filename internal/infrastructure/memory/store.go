// Package memory implementa los repositorios del libro en memoria.
// Es el driver STORAGE_DRIVER=memory y el doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

// Store guarda todo el estado detrás de un único mutex.
// Las transacciones toman txMu, hacen snapshot y lo restauran si fn falla;
// las escrituras fuera de transacción también toman txMu para no perderse en un restore.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users     map[string]entity.User
	customers map[string]entity.Customer
	items     map[string]entity.Item
	bills     map[string]entity.Bill
	payments  map[string]entity.Payment
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		customers: make(map[string]entity.Customer),
		items:     make(map[string]entity.Item),
		bills:     make(map[string]entity.Bill),
		payments:  make(map[string]entity.Payment),
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Customers repositorio de clientes fuera de transacción.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Items repositorio de ítems del menú.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Bills repositorio de facturas fuera de transacción.
func (s *Store) Bills() *BillRepo { return &BillRepo{s: s} }

// Payments repositorio de pagos fuera de transacción.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// RunLedger ejecuta fn de forma serializada; si fn retorna error el estado vuelve al snapshot.
func (s *Store) RunLedger(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	err := fn(
		&CustomerRepo{s: s, inTx: true},
		&BillRepo{s: s, inTx: true},
		&PaymentRepo{s: s, inTx: true},
	)
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	customers map[string]entity.Customer
	bills     map[string]entity.Bill
	payments  map[string]entity.Payment
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		customers: cloneMap(s.customers),
		bills:     cloneMap(s.bills),
		payments:  cloneMap(s.payments),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = snap.customers
	s.bills = snap.bills
	s.payments = snap.payments
}

// write ejecuta fn con el lock de escritura. Fuera de tx también serializa contra RunLedger.
func (s *Store) write(inTx bool, fn func() error) error {
	if !inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) || limit <= 0 {
		return []T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
