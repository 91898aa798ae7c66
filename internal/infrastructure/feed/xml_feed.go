// Package feed construye el catálogo XML (RSS 2.0 con extensiones g: de Google Merchant)
// que consumen la tienda web y los catálogos de redes sociales.
package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/entity"
)

const nsGoogle = "http://base.google.com/ns/1.0"

var _ usecase.CatalogFeedBuilder = (*XMLFeedBuilder)(nil)

// XMLFeedBuilder implementa usecase.CatalogFeedBuilder con etree.
type XMLFeedBuilder struct{}

func NewXMLFeedBuilder() *XMLFeedBuilder { return &XMLFeedBuilder{} }

// Build genera el documento; un producto por <item>, el id es el SKU.
// Un producto ausente de inStock se publica como agotado.
func (b *XMLFeedBuilder) Build(cfg *entity.WebConfig, products []*entity.Product, inStock map[string]bool) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("feed: falta la configuración web")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", nsGoogle)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(cfg.SiteName)
	channel.CreateElement("link").SetText(cfg.SiteURL)
	channel.CreateElement("description").SetText(nonEmpty(cfg.BannerText, cfg.SiteName))

	base := strings.TrimRight(cfg.SiteURL, "/")
	for _, p := range products {
		item := channel.CreateElement("item")
		g := func(tag, value string) {
			if value != "" {
				item.CreateElement("g:" + tag).SetText(value)
			}
		}
		g("id", p.SKU)
		item.CreateElement("title").SetText(p.Name)
		item.CreateElement("description").SetText(nonEmpty(p.Description, p.Name))
		if base != "" {
			item.CreateElement("link").SetText(base + "/productos/" + p.SKU)
		}
		g("image_link", p.ImageURL)
		g("price", p.Price.StringFixed(2)+" "+cfg.Currency)
		g("availability", availability(inStock[p.ID]))
		g("condition", "new")
		g("size", p.Size)
		g("color", p.Color)
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("feed: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func availability(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "out of stock"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
