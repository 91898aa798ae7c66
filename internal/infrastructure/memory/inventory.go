package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type stockRepo struct{ s *Store }

// Stock repositorio de stock por tienda.
func (s *Store) Stock() repository.StockRepository { return stockRepo{s} }

func (r stockRepo) Get(_ context.Context, productID, storeID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.d.stock[stockKey{productID, storeID}]
	if !ok {
		return &entity.Stock{ProductID: productID, StoreID: storeID}, nil
	}
	return &st, nil
}

func (r stockRepo) TotalQuantity(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for k, st := range r.s.d.stock {
		if k.product == productID {
			total = total.Add(st.Quantity)
		}
	}
	return total, nil
}

func (r stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stock[stockKey{st.ProductID, st.StoreID}] = *st
	return nil
}

// GetForUpdate crea la fila en cero si no existe; el bloqueo lo da la transacción serializada.
func (r stockRepo) GetForUpdate(_ context.Context, productID, storeID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := stockKey{productID, storeID}
	st, ok := r.s.d.stock[k]
	if !ok {
		st = entity.Stock{ProductID: productID, StoreID: storeID}
		r.s.d.stock[k] = st
	}
	return &st, nil
}

func (r stockRepo) SetMinimum(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := stockKey{st.ProductID, st.StoreID}
	current, ok := r.s.d.stock[k]
	if !ok {
		current = entity.Stock{ProductID: st.ProductID, StoreID: st.StoreID}
	}
	current.MinQuantity = st.MinQuantity
	current.UpdatedAt = st.UpdatedAt
	r.s.d.stock[k] = current
	return nil
}

func (r stockRepo) ListByStore(_ context.Context, storeID string, lowOnly bool) ([]*entity.StockLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockLine
	for k, st := range r.s.d.stock {
		if k.store != storeID || (lowOnly && !st.IsLow()) {
			continue
		}
		p := r.s.d.products[k.product]
		out = append(out, &entity.StockLine{
			Stock:       st,
			SKU:         p.SKU,
			ProductName: p.Name,
			UnitCost:    p.Cost,
			Price:       p.Price,
		})
	}
	out, _ = page(out, func(l *entity.StockLine) string { return l.SKU }, 0, 0)
	return out, nil
}

type movementRepo struct{ s *Store }

// Movements repositorio de movimientos de inventario.
func (s *Store) Movements() repository.InventoryMovementRepository { return movementRepo{s} }

func (r movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.d.movements = append(r.s.d.movements, *m)
	return nil
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for i := len(r.s.d.movements) - 1; i >= 0; i-- {
		m := r.s.d.movements[i]
		if f.StoreID != "" && m.StoreID != f.StoreID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, ptr(m))
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r movementRepo) ListTransfers(_ context.Context, rng repository.DateRange, limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byTx := map[string]*entity.Transfer{}
	var order []string
	for _, m := range r.s.d.movements {
		if m.Type != entity.MovementTypeTRANSFER {
			continue
		}
		if (rng.From != nil && m.CreatedAt.Before(*rng.From)) || (rng.To != nil && m.CreatedAt.After(*rng.To)) {
			continue
		}
		t, ok := byTx[m.TransactionID]
		if !ok {
			t = &entity.Transfer{TransactionID: m.TransactionID, ProductID: m.ProductID, CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt}
			byTx[m.TransactionID] = t
			order = append(order, m.TransactionID)
		}
		if m.Quantity.IsNegative() {
			t.FromStoreID = m.StoreID
		} else {
			t.ToStoreID = m.StoreID
			t.Quantity = m.Quantity
		}
	}
	out := make([]*entity.Transfer, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		out = append(out, byTx[order[i]])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// MovementsByTransaction devuelve los movimientos de una transacción en orden de registro.
func (s *Store) MovementsByTransaction(txID string) []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.InventoryMovement
	for _, m := range s.d.movements {
		if m.TransactionID == txID {
			out = append(out, m)
		}
	}
	return out
}

// MovementCount cantidad total de movimientos registrados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.movements)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s no existe", kind, id)
}
