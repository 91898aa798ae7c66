package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator(t *testing.T) {
	tests := []struct {
		name                        string
		stock, cost, qty, entryCost string
		want                        string
	}{
		{"sin stock toma costo de entrada", "0", "0", "10", "12000", "12000"},
		{"promedio ponderado", "10", "10000", "10", "20000", "15000"},
		{"entrada pequeña", "30", "9000", "10", "13000", "10000"},
		{"stock negativo no pondera", "-2", "5000", "4", "7000", "7000"},
		{"entrada vacía sin stock", "0", "0", "0", "100", "0"},
		{"redondeo a 4 decimales", "3", "1", "0", "0", "1"},
		{"fraccion periódica", "1", "1", "2", "2", "1.6667"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CostCalculator(d(tt.stock), d(tt.cost), d(tt.qty), d(tt.entryCost))
			assert.True(t, d(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}
