package memory

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type jobRepo struct{ s *Store }

// Jobs repositorio de trabajos de confección.
func (s *Store) Jobs() repository.JobRepository { return jobRepo{s} }

func (r jobRepo) Create(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.jobs[j.ID] = *j
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.d.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (r jobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	return r.GetByID(ctx, id)
}

func (r jobRepo) Update(_ context.Context, j *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.jobs[j.ID]; !ok {
		return notFound("trabajo", j.ID)
	}
	r.s.d.jobs[j.ID] = *j
	return nil
}

func (r jobRepo) List(_ context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Job
	for _, j := range r.s.d.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.SeamstressID != "" && j.SeamstressID != f.SeamstressID {
			continue
		}
		out = append(out, ptr(j))
	}
	out, total := page(out, func(j *entity.Job) string { return j.ID }, f.Limit, f.Offset)
	return out, total, nil
}

type fabricRepo struct{ s *Store }

// Fabrics repositorio de telas.
func (s *Store) Fabrics() repository.FabricRepository { return fabricRepo{s} }

func (r fabricRepo) Create(_ context.Context, f *entity.Fabric) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.fabrics[f.ID] = *f
	return nil
}

func (r fabricRepo) GetByID(_ context.Context, id string) (*entity.Fabric, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.d.fabrics[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r fabricRepo) GetForUpdate(ctx context.Context, id string) (*entity.Fabric, error) {
	return r.GetByID(ctx, id)
}

// Update conserva el stock guardado, igual que el repositorio SQL.
func (r fabricRepo) Update(_ context.Context, f *entity.Fabric) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.d.fabrics[f.ID]
	if !ok {
		return notFound("tela", f.ID)
	}
	updated := *f
	updated.StockKg = current.StockKg
	r.s.d.fabrics[f.ID] = updated
	return nil
}

func (r fabricRepo) UpdateStock(_ context.Context, id string, stockKg, pricePerKg decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.d.fabrics[id]
	if !ok {
		return notFound("tela", id)
	}
	f.StockKg = stockKg
	f.PricePerKg = pricePerKg
	r.s.d.fabrics[id] = f
	return nil
}

func (r fabricRepo) List(_ context.Context, flt repository.FabricFilter) ([]*entity.Fabric, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Fabric
	for _, f := range r.s.d.fabrics {
		if !matches(flt.ListFilter, f.Name, f.Active) || (flt.SupplierID != "" && f.SupplierID != flt.SupplierID) {
			continue
		}
		out = append(out, ptr(f))
	}
	out, total := page(out, func(f *entity.Fabric) string { return f.Name }, flt.Limit, flt.Offset)
	return out, total, nil
}

func (r fabricRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.fabrics, id)
	return nil
}

func (r fabricRepo) HasParams(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.d.params {
		if p.FabricID == id {
			return true, nil
		}
	}
	return false, nil
}

type paramsRepo struct{ s *Store }

// FabricParams repositorio de parámetros de tela.
func (s *Store) FabricParams() repository.FabricParamsRepository { return paramsRepo{s} }

func (r paramsRepo) Create(_ context.Context, p *entity.FabricParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.params[p.ID] = *p
	return nil
}

func (r paramsRepo) GetByID(_ context.Context, id string) (*entity.FabricParams, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.params[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r paramsRepo) Update(_ context.Context, p *entity.FabricParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.params[p.ID] = *p
	return nil
}

func (r paramsRepo) List(_ context.Context, fabricID string, limit, offset int) ([]*entity.FabricParams, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.FabricParams
	for _, p := range r.s.d.params {
		if fabricID == "" || p.FabricID == fabricID {
			out = append(out, ptr(p))
		}
	}
	out, total := page(out, func(p *entity.FabricParams) string { return p.ID }, limit, offset)
	return out, total, nil
}

func (r paramsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.params, id)
	return nil
}

type seamstressRepo struct{ s *Store }

// Seamstresses repositorio de costureros.
func (s *Store) Seamstresses() repository.SeamstressRepository { return seamstressRepo{s} }

func (r seamstressRepo) Create(_ context.Context, m *entity.Seamstress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.seamstresses[m.ID] = *m
	return nil
}

func (r seamstressRepo) GetByID(_ context.Context, id string) (*entity.Seamstress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.d.seamstresses[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r seamstressRepo) Update(_ context.Context, m *entity.Seamstress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.seamstresses[m.ID] = *m
	return nil
}

func (r seamstressRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Seamstress, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Seamstress
	for _, m := range r.s.d.seamstresses {
		if matches(f, m.Name, m.Active) {
			out = append(out, ptr(m))
		}
	}
	out, total := page(out, func(m *entity.Seamstress) string { return m.Name }, f.Limit, f.Offset)
	return out, total, nil
}

func (r seamstressRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.seamstresses, id)
	return nil
}

type supplierRepo struct{ s *Store }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return supplierRepo{s} }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.d.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Supplier, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.d.suppliers {
		if matches(f, sp.Name, sp.Active) {
			out = append(out, ptr(sp))
		}
	}
	out, total := page(out, func(sp *entity.Supplier) string { return sp.Name }, f.Limit, f.Offset)
	return out, total, nil
}

func (r supplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.d.suppliers, id)
	return nil
}

func (r supplierRepo) HasFabrics(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.d.fabrics {
		if f.SupplierID == id {
			return true, nil
		}
	}
	return false, nil
}
