package entity

import "time"

// Store representa una tienda o sucursal donde se almacena y vende inventario.
type Store struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
