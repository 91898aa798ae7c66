package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WebConfig configuración del sitio web público (registro único).
type WebConfig struct {
	SiteName     string
	SiteURL      string
	ContactEmail string
	WhatsApp     string
	Instagram    string
	BannerText   string
	ShippingCost decimal.Decimal
	Currency     string
	UpdatedAt    time.Time
}
