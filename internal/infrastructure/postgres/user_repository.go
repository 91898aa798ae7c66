package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.WebConfigRepository = (*WebConfigRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, role, store_id, status, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var storeID *string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &storeID, &u.Status,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.StoreID = deref(storeID)
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, nullable(user.StoreID), user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert user", err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, cond, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get user", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

// GetByEmail obtiene un usuario por email (ya normalizado en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

// Update actualiza nombre, rol, tienda y estado. El password va por UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET name = $2, role = $3, store_id = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		user.ID, user.Name, user.Role, nullable(user.StoreID), user.Status, user.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return dbError("update password", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List usuarios por nombre. Active filtra por status.
func (r *UserRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	var w where
	w.filterActive(repository.ListFilter{Query: f.Query}, "name", "email")
	if f.Active != nil {
		status := entity.UserStatusInactive
		if *f.Active {
			status = entity.UserStatusActive
		}
		w.add("status = ?", status)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count users", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`+w.sql()+` ORDER BY name`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, dbError("scan user", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dbError("delete user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// WebConfigRepo registro único (id = 1) de la configuración del sitio.
type WebConfigRepo struct {
	q Querier
}

func NewWebConfigRepository(q Querier) *WebConfigRepo {
	return &WebConfigRepo{q: q}
}

// Get devuelve nil si todavía no se guardó la configuración.
func (r *WebConfigRepo) Get(ctx context.Context) (*entity.WebConfig, error) {
	var c entity.WebConfig
	err := r.q.QueryRow(ctx, `
		SELECT site_name, site_url, contact_email, whatsapp, instagram, banner_text, shipping_cost, currency, updated_at
		FROM web_config WHERE id = 1`).Scan(
		&c.SiteName, &c.SiteURL, &c.ContactEmail, &c.WhatsApp, &c.Instagram, &c.BannerText,
		&c.ShippingCost, &c.Currency, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get web config", err)
	}
	return &c, nil
}

func (r *WebConfigRepo) Save(ctx context.Context, c *entity.WebConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO web_config (id, site_name, site_url, contact_email, whatsapp, instagram, banner_text, shipping_cost, currency, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name, site_url = EXCLUDED.site_url, contact_email = EXCLUDED.contact_email,
			whatsapp = EXCLUDED.whatsapp, instagram = EXCLUDED.instagram, banner_text = EXCLUDED.banner_text,
			shipping_cost = EXCLUDED.shipping_cost, currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at`,
		c.SiteName, c.SiteURL, c.ContactEmail, c.WhatsApp, c.Instagram, c.BannerText, c.ShippingCost, c.Currency, c.UpdatedAt)
	if err != nil {
		return dbError("save web config", err)
	}
	return nil
}
