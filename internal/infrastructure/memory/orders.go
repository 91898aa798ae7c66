package memory

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

type saleRepo struct{ s *Store }

// Sales repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return saleRepo{s} }

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.s.d.sales[sale.ID] = cp
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.d.sales[id]
	if !ok {
		return nil, nil
	}
	sale.Items = append([]entity.SaleItem(nil), sale.Items...)
	return &sale, nil
}

func (r saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r saleRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.d.sales[id]
	if !ok {
		return notFound("venta", id)
	}
	sale.Status = status
	r.s.d.sales[id] = sale
	return nil
}

func (r saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.d.sales {
		if f.StoreID != "" && sale.StoreID != f.StoreID {
			continue
		}
		if f.Status != "" && sale.Status != f.Status {
			continue
		}
		out = append(out, ptr(sale))
	}
	out, total := page(out, func(s *entity.Sale) string { return s.ID }, f.Limit, f.Offset)
	return out, total, nil
}

type cartRepo struct{ s *Store }

// Carts repositorio de carritos.
func (s *Store) Carts() repository.CartRepository { return cartRepo{s} }

func (r cartRepo) Create(_ context.Context, cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *cart
	cp.Items = append([]entity.CartItem(nil), cart.Items...)
	r.s.d.carts[cart.ID] = cp
	return nil
}

func (r cartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart, ok := r.s.d.carts[id]
	if !ok {
		return nil, nil
	}
	return &cart, nil
}

func (r cartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r cartRepo) Update(_ context.Context, cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.carts[cart.ID]; !ok {
		return notFound("carrito", cart.ID)
	}
	r.s.d.carts[cart.ID] = *cart
	return nil
}

func (r cartRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Cart, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cart
	for _, c := range r.s.d.carts {
		if status == "" || c.Status == status {
			out = append(out, ptr(c))
		}
	}
	out, total := page(out, func(c *entity.Cart) string { return c.ID }, limit, offset)
	return out, total, nil
}
