package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila está referenciada (o referencia una inexistente).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// isInvalidText 22P02: el valor no se puede convertir al tipo de la columna
// (ej. un id de la URL que no es UUID).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// isUndefinedTable 42P01: la tabla no existe.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}

// isNoRows: sin fila, o un id que no puede existir porque no es UUID.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// dbError envuelve el error de la consulta con la operación. Un id inválido se
// reporta como ErrNotFound.
func dbError(op string, err error) error {
	if isInvalidText(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// where acumula condiciones y argumentos posicionales de un SELECT dinámico.
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente $n.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos. limit <= 0 no limita (LIMIT NULL).
func (w *where) page(limit, offset int) string {
	var lim any
	if limit > 0 {
		lim = limit
	}
	w.args = append(w.args, lim, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// filterActive aplica búsqueda por texto y estado activo comunes a los catálogos.
func (w *where) filterActive(f repository.ListFilter, searchCols ...string) {
	if q := strings.TrimSpace(f.Query); q != "" && len(searchCols) > 0 {
		w.args = append(w.args, "%"+q+"%")
		n := len(w.args)
		parts := make([]string, len(searchCols))
		for i, c := range searchCols {
			parts[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
		}
		w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
	}
	if f.Active != nil {
		w.add("active = ?", *f.Active)
	}
}
