package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/entity"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.BillRepository     = (*BillRepo)(nil)
	_ repository.PaymentRepository  = (*PaymentRepo)(nil)
)

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.s.write(false, func() error {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		r.s.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func() {
		for _, u := range r.s.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.read(func() {
		if u, ok := r.s.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	s    *Store
	inTx bool
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.write(r.inTx, func() error {
		if _, ok := r.s.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		r.s.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.s.read(func() {
		if c, ok := r.s.customers[id]; ok {
			out = &c
		}
	})
	return out, nil
}

// GetByIDForUpdate en memoria no necesita bloqueo de fila: RunLedger ya serializa con txMu.
func (r *CustomerRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

func (r *CustomerRepo) ListAll(_ context.Context) ([]*entity.Customer, error) {
	var all []*entity.Customer
	r.s.read(func() {
		all = make([]*entity.Customer, 0, len(r.s.customers))
		for _, c := range r.s.customers {
			all = append(all, &c)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func (r *CustomerRepo) Count(_ context.Context) (int, error) {
	var n int
	r.s.read(func() { n = len(r.s.customers) })
	return n, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.s.write(r.inTx, func() error {
		cur, ok := r.s.customers[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name, cur.ShopNo, cur.Phone, cur.UpdatedAt = c.Name, c.ShopNo, c.Phone, c.UpdatedAt
		r.s.customers[c.ID] = cur
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.inTx, func() error {
		if _, ok := r.s.customers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, b := range r.s.bills {
			if b.CustomerID == id {
				return fmt.Errorf("%w: el cliente tiene facturas o pagos", domain.ErrConflict)
			}
		}
		for _, p := range r.s.payments {
			if p.CustomerID == id {
				return fmt.Errorf("%w: el cliente tiene facturas o pagos", domain.ErrConflict)
			}
		}
		delete(r.s.customers, id)
		return nil
	})
}

func (r *CustomerRepo) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.s.write(r.inTx, func() error {
		c, ok := r.s.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.BillAmount = c.BillAmount.Add(delta)
		c.UpdatedAt = time.Now()
		r.s.customers[id] = c
		balance = c.BillAmount
		return nil
	})
	return balance, err
}

func (r *CustomerRepo) SetBalance(_ context.Context, id string, balance decimal.Decimal) error {
	return r.s.write(r.inTx, func() error {
		c, ok := r.s.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.BillAmount = balance
		c.UpdatedAt = time.Now()
		r.s.customers[id] = c
		return nil
	})
}

// ── Ítems ────────────────────────────────────────────────────────────────────

// ItemRepo ítems del menú en memoria.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	return r.s.write(false, func() error {
		if _, ok := r.s.items[it.ID]; ok {
			return domain.ErrDuplicate
		}
		r.s.items[it.ID] = *it
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.s.read(func() {
		if it, ok := r.s.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var all []*entity.Item
	r.s.read(func() {
		all = make([]*entity.Item, 0, len(r.s.items))
		for _, it := range r.s.items {
			all = append(all, &it)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func (r *ItemRepo) Update(_ context.Context, it *entity.Item) error {
	return r.s.write(false, func() error {
		if _, ok := r.s.items[it.ID]; !ok {
			return domain.ErrNotFound
		}
		r.s.items[it.ID] = *it
		return nil
	})
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	return r.s.write(false, func() error {
		if _, ok := r.s.items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(r.s.items, id)
		return nil
	})
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// BillRepo facturas en memoria; las líneas se copian al guardar y al leer.
type BillRepo struct {
	s    *Store
	inTx bool
}

func (r *BillRepo) Create(_ context.Context, b *entity.Bill) error {
	return r.s.write(r.inTx, func() error {
		if _, ok := r.s.customers[b.CustomerID]; !ok {
			return fmt.Errorf("cliente %s: %w", b.CustomerID, domain.ErrNotFound)
		}
		if _, ok := r.s.bills[b.ID]; ok {
			return domain.ErrDuplicate
		}
		r.s.bills[b.ID] = cloneBill(*b)
		return nil
	})
}

func (r *BillRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	var out *entity.Bill
	r.s.read(func() {
		if b, ok := r.s.bills[id]; ok {
			c := cloneBill(b)
			out = &c
		}
	})
	return out, nil
}

func (r *BillRepo) List(_ context.Context, f repository.BillFilter) ([]*entity.Bill, error) {
	var out []*entity.Bill
	r.s.read(func() {
		for _, b := range r.s.bills {
			if f.CustomerID != "" && b.CustomerID != f.CustomerID {
				continue
			}
			if !inRange(b.Date, f.From, f.To) {
				continue
			}
			c := cloneBill(b)
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// PaymentRepo pagos recibidos en memoria.
type PaymentRepo struct {
	s    *Store
	inTx bool
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	return r.s.write(r.inTx, func() error {
		if _, ok := r.s.customers[p.CustomerID]; !ok {
			return fmt.Errorf("cliente %s: %w", p.CustomerID, domain.ErrNotFound)
		}
		if _, ok := r.s.payments[p.ID]; ok {
			return domain.ErrDuplicate
		}
		r.s.payments[p.ID] = *p
		return nil
	})
}

func (r *PaymentRepo) List(_ context.Context, f repository.PaymentFilter) ([]*entity.Payment, error) {
	var out []*entity.Payment
	r.s.read(func() {
		for _, p := range r.s.payments {
			if f.CustomerID != "" && p.CustomerID != f.CustomerID {
				continue
			}
			if !inRange(p.ReceivedAt, f.From, f.To) {
				continue
			}
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneBill(b entity.Bill) entity.Bill {
	b.Lines = append([]entity.BillLine(nil), b.Lines...)
	return b
}

// inRange [from, to); cero = sin límite.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
