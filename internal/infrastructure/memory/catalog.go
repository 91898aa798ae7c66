package memory

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type productRepo struct{ s *Store }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.d.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate igual que GetByID; el bloqueo lo da la transacción serializada.
func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.d.products {
		if p.SKU == sku {
			return ptr(p), nil
		}
	}
	return nil, nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.products[p.ID] = *p
	return nil
}

func (r productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	r.s.d.products[id] = p
	return nil
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.d.products {
		if !matches(f.ListFilter, p.Name, p.Active) || (f.WebOnly && !p.WebVisible) {
			continue
		}
		out = append(out, ptr(p))
	}
	out, total := page(out, func(p *entity.Product) string { return p.SKU }, f.Limit, f.Offset)
	return out, total, nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.products, id)
	return nil
}

type storeRepo struct{ s *Store }

// Stores repositorio de tiendas.
func (s *Store) Stores() repository.StoreRepository { return storeRepo{s} }

func (r storeRepo) Create(_ context.Context, st *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stores[st.ID] = *st
	return nil
}

func (r storeRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.d.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r storeRepo) Update(_ context.Context, st *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.stores[st.ID] = *st
	return nil
}

func (r storeRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Store, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Store
	for _, st := range r.s.d.stores {
		if matches(f, st.Name, st.Active) {
			out = append(out, ptr(st))
		}
	}
	out, total := page(out, func(st *entity.Store) string { return st.Name }, f.Limit, f.Offset)
	return out, total, nil
}

func (r storeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.stores, id)
	return nil
}

func (r storeRepo) HasStock(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, st := range r.s.d.stock {
		if k.store == id && !st.Quantity.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.d.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.d.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Email == email {
			return ptr(u), nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.users[u.ID] = *u
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.s.d.users[id] = u
	return nil
}

func (r userRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.d.users {
		if matches(f, u.Name, u.Status == entity.UserStatusActive) {
			out = append(out, ptr(u))
		}
	}
	out, total := page(out, func(u *entity.User) string { return u.Email }, f.Limit, f.Offset)
	return out, total, nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.users, id)
	return nil
}

type webConfigRepo struct{ s *Store }

// WebConfig repositorio del registro único de configuración web.
func (s *Store) WebConfig() repository.WebConfigRepository { return webConfigRepo{s} }

func (r webConfigRepo) Get(context.Context) (*entity.WebConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.d.webConfig == nil {
		return nil, nil
	}
	cfg := *r.s.d.webConfig
	return &cfg, nil
}

func (r webConfigRepo) Save(_ context.Context, cfg *entity.WebConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.webConfig = ptr(*cfg)
	return nil
}
