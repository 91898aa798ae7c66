package feed

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ItemsYMoneda(t *testing.T) {
	cfg := &entity.WebConfig{SiteName: "Textiles Luna", SiteURL: "https://luna.co/", Currency: "COP"}
	products := []*entity.Product{
		{ID: "p1", SKU: "CAM-01", Name: "Camiseta", Price: decimal.NewFromInt(35000), Size: "M", ImageURL: "https://img/cam.png"},
		{ID: "p2", SKU: "PAN-02", Name: "Pantalón & short", Price: decimal.RequireFromString("89900.5")},
	}

	out, err := NewXMLFeedBuilder().Build(cfg, products, map[string]bool{"p1": true, "p2": false})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, "Textiles Luna", doc.FindElement("//channel/title").Text())

	items := doc.FindElements("//channel/item")
	require.Len(t, items, 2)
	assert.Equal(t, "CAM-01", items[0].FindElement("g:id").Text())
	assert.Equal(t, "35000.00 COP", items[0].FindElement("g:price").Text())
	assert.Equal(t, "https://luna.co/productos/CAM-01", items[0].FindElement("link").Text())
	assert.Equal(t, "Pantalón & short", items[1].FindElement("title").Text())
	assert.Nil(t, items[1].FindElement("g:size"), "campos vacíos no se emiten")
	assert.Equal(t, "in stock", items[0].FindElement("g:availability").Text())
	assert.Equal(t, "out of stock", items[1].FindElement("g:availability").Text())
}

func TestBuild_SinConfig(t *testing.T) {
	_, err := NewXMLFeedBuilder().Build(nil, nil, nil)
	assert.Error(t, err)
}
