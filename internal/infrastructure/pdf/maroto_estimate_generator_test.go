package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisniewski/warsztat-api/internal/application/orders"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatPLN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 zł"},
		{"7.5", "7,50 zł"},
		{"1234.5", "1 234,50 zł"},
		{"1234567.89", "1 234 567,89 zł"},
		{"-250.10", "-250,10 zł"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPLN(dec(tt.in)), "input %s", tt.in)
	}
}

func sampleDocument(mode string) *orders.EstimateDocument {
	services := []pricing.LineItem{
		pricing.NewLineItem("Wymiana oleju", "", "", dec("120.00"), dec("1")),
	}
	materials := []pricing.LineItem{
		pricing.NewLineItem("Olej 5W30", "OL-5W30", "l", dec("46.90"), dec("4.5")),
	}
	return orders.AssembleEstimate(orders.AssembleInput{
		Shop: orders.ShopIdentity{
			Name:    "SERWIS SAMOCHODOWY",
			Address: "ul. Kasprowicza 38",
			City:    "Lublin",
			Phone:   "513 150 535",
		},
		Client:         &entity.Client{FirstName: "Jan", LastName: "Kowalski"},
		Vehicle:        &entity.Vehicle{Manufacturer: "Škoda", Model: "Octavia", PlateNumber: "LU 12345"},
		Services:       services,
		Materials:      materials,
		VATRatePercent: 23,
		Mode:           mode,
		Notes:          "Zalecana wymiana klocków hamulcowych.",
		IssuedAt:       time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		IssuedBy:       "Anna Nowak",
	})
}

func TestRenderProducesPDF(t *testing.T) {
	gen := NewMarotoEstimateGenerator()
	for _, mode := range []string{orders.PricingModeDetailed, orders.PricingModeTotalOnly} {
		out, err := gen.Render(sampleDocument(mode))
		require.NoError(t, err, "mode %s", mode)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF", string(out[:4]), "mode %s", mode)
	}
}
