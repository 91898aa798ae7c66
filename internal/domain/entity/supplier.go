package entity

import "time"

// Supplier representa un proveedor de telas e insumos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
