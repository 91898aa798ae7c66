package repository

import "time"

// ListFilter filtros comunes de los listados paginados.
type ListFilter struct {
	Query  string // búsqueda por nombre (ILIKE)
	Active *bool
	Limit  int
	Offset int
}

// DateRange rango de fechas opcional; nil significa sin límite.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
