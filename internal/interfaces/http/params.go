package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// page lee ?limit=&offset= con los límites por defecto (20, máx 100).
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// listFilter filtros comunes ?q=&active= más paginación.
func listFilter(c *fiber.Ctx) repository.ListFilter {
	p := page(c)
	return repository.ListFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Active: optionalBool(c, "active"),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

func optionalBool(c *fiber.Ctx, key string) *bool {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// dateRange lee ?from=&to= en formato YYYY-MM-DD o RFC3339. Una fecha sin hora en "to"
// incluye el día completo.
func dateRange(c *fiber.Ctx) (repository.DateRange, error) {
	var r repository.DateRange
	if v := c.Query("from"); v != "" {
		t, _, err := parseDate(v)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, dateOnly, err := parseDate(v)
		if err != nil {
			return r, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, domain.ErrInvalidInput
	}
	return r, nil
}

func parseDate(v string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, v, time.Local); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, domain.ErrInvalidInput
	}
	return t, false, nil
}

// actor identidad del usuario para las reglas por tienda de ventas y carritos.
func actor(c *fiber.Ctx) sales.Actor {
	return sales.Actor{UserID: GetUserID(c), Role: GetRole(c), StoreID: GetStoreID(c)}
}
