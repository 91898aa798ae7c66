package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WebConfigRequest body de PUT /api/config-web (reemplazo completo).
type WebConfigRequest struct {
	SiteName     string          `json:"site_name"`
	SiteURL      string          `json:"site_url"`
	ContactEmail string          `json:"contact_email"`
	WhatsApp     string          `json:"whatsapp"`
	Instagram    string          `json:"instagram"`
	BannerText   string          `json:"banner_text"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Currency     string          `json:"currency"`
}

// WebConfigResponse salida de la configuración del sitio.
type WebConfigResponse struct {
	SiteName     string          `json:"site_name"`
	SiteURL      string          `json:"site_url"`
	ContactEmail string          `json:"contact_email"`
	WhatsApp     string          `json:"whatsapp"`
	Instagram    string          `json:"instagram"`
	BannerText   string          `json:"banner_text"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Currency     string          `json:"currency"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
