// Package pdf renders the printable repair estimate ("kosztorys naprawy").
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: shop identity (left)  │  city + Polish date (right) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KOSZTORYS NAPRAWY                                          │
//	│  client + vehicle block                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  WYKONANE PRACE: qty | name | unit price | net | VAT | total│
//	│  CZĘŚCI UŻYTE DO NAPRAWY: + catalog number and unit         │
//	│  subtotals and grand total (or single figure in TOTAL_ONLY) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INFORMACJE DLA KLIENTA O STANIE POJAZDU                    │
//	│  acceptance signature block (DETAILED only)                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/kwisniewski/warsztat-api/internal/application/orders"
)

var (
	colorPrimary = &props.Color{Red: 40, Green: 40, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ orders.EstimatePDFGenerator = (*MarotoEstimateGenerator)(nil)

// MarotoEstimateGenerator implements orders.EstimatePDFGenerator with Maroto v2.
type MarotoEstimateGenerator struct{}

// NewMarotoEstimateGenerator builds the generator.
func NewMarotoEstimateGenerator() *MarotoEstimateGenerator { return &MarotoEstimateGenerator{} }

// Render produces the estimate PDF and returns its bytes.
func (g *MarotoEstimateGenerator) Render(doc *orders.EstimateDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kosztorys naprawy", true).
		WithAuthor(doc.Shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titleRow())
	m.AddRows(partiesRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	detailed := doc.Mode == orders.PricingModeDetailed

	if len(doc.Services) > 0 {
		m.AddRows(sectionTitleRow("WYKONANE PRACE"))
		m.AddRows(tableHeaderRow(false, detailed))
		for _, r := range lineRows(doc.Services, false, detailed) {
			m.AddRows(r)
		}
		if detailed {
			m.AddRows(subtotalRow("Razem prace:", doc.ServicesSubtotal.Gross))
		}
	}

	if len(doc.Materials) > 0 {
		m.AddRows(sectionTitleRow("CZĘŚCI UŻYTE DO NAPRAWY"))
		m.AddRows(tableHeaderRow(true, detailed))
		for _, r := range lineRows(doc.Materials, true, detailed) {
			m.AddRows(r)
		}
		if detailed {
			m.AddRows(subtotalRow("Razem części:", doc.MaterialsSubtotal.Gross))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if detailed {
		m.AddRows(totalsRow(doc))
	} else {
		m.AddRows(totalOnlyRow(doc))
	}

	if doc.Notes != "" {
		m.AddRows(line.NewRow(2))
		for _, r := range notesRows(doc.Notes) {
			m.AddRows(r)
		}
	}

	if detailed {
		m.AddRows(line.NewRow(6))
		m.AddRows(signatureRow())
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: shop identity on the left, city and issue date on the right.
func headerRow(doc *orders.EstimateDocument) core.Row {
	issued := doc.Shop.City
	if issued != "" {
		issued += ", "
	}
	issued += orders.FormatDatePolish(doc.IssuedAt)

	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.Shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Shop.Address, props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New("tel. "+doc.Shop.Phone, props.Text{Size: 9, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(issued, props.Text{Size: 9, Align: align.Right, Top: 1, Color: colorGray}),
		),
	)
}

func titleRow() core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("KOSZTORYS NAPRAWY", props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 2, Color: colorPrimary,
		}),
	))
}

// partiesRow: client on the left, vehicle on the right.
func partiesRow(doc *orders.EstimateDocument) core.Row {
	vehicleName := strings.TrimSpace(doc.Vehicle.Manufacturer + " " + doc.Vehicle.Model)
	if doc.Vehicle.Year > 0 {
		vehicleName = fmt.Sprintf("%s (%d)", vehicleName, doc.Vehicle.Year)
	}
	return row.New(22).Add(
		col.New(6).Add(
			text.New("Zleceniodawca:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}),
			text.New(doc.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("Pojazd:", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
			text.New(vehicleName, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New(vehicleDetails(doc.Vehicle), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func vehicleDetails(v orders.EstimateVehicle) string {
	parts := make([]string, 0, 2)
	if v.PlateNumber != "" {
		parts = append(parts, "nr rej. "+v.PlateNumber)
	}
	if v.VIN != "" {
		parts = append(parts, "VIN "+v.VIN)
	}
	return strings.Join(parts, "   ")
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3, Color: colorPrimary}),
	))
}

// tableHeaderRow: column headers. Materials carry a catalog number column;
// in TOTAL_ONLY mode the money columns are omitted entirely.
func tableHeaderRow(withCatalogNumber, detailed bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Color: colorGray,
		}))
	}
	if !detailed {
		if withCatalogNumber {
			return row.New(8).Add(
				h("Lp.", 1, align.Center),
				h("Nazwa", 7, align.Left),
				h("Nr kat.", 2, align.Left),
				h("Ilość", 2, align.Right),
			)
		}
		return row.New(8).Add(
			h("Lp.", 1, align.Center),
			h("Nazwa", 9, align.Left),
			h("Ilość", 2, align.Right),
		)
	}
	if withCatalogNumber {
		return row.New(8).Add(
			h("Lp.", 1, align.Center),
			h("Nazwa", 3, align.Left),
			h("Nr kat.", 2, align.Left),
			h("Ilość", 1, align.Right),
			h("Cena jedn.", 2, align.Right),
			h("VAT", 1, align.Right),
			h("Wartość", 2, align.Right),
		)
	}
	return row.New(8).Add(
		h("Lp.", 1, align.Center),
		h("Nazwa", 5, align.Left),
		h("Ilość", 1, align.Right),
		h("Cena jedn.", 2, align.Right),
		h("VAT", 1, align.Right),
		h("Wartość", 2, align.Right),
	)
}

// lineRows: one row per estimate line.
func lineRows(lines []orders.EstimateLine, withCatalogNumber, detailed bool) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		qty := l.Quantity.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		if !detailed {
			if withCatalogNumber {
				result = append(result, row.New(7).Add(
					cell(fmt.Sprintf("%d.", i+1), 1, align.Center),
					cell(l.Name, 7, align.Left),
					cell(l.CatalogNumber, 2, align.Left),
					cell(qty, 2, align.Right),
				))
			} else {
				result = append(result, row.New(7).Add(
					cell(fmt.Sprintf("%d.", i+1), 1, align.Center),
					cell(l.Name, 9, align.Left),
					cell(qty, 2, align.Right),
				))
			}
			continue
		}
		if withCatalogNumber {
			result = append(result, row.New(7).Add(
				cell(fmt.Sprintf("%d.", i+1), 1, align.Center),
				cell(l.Name, 3, align.Left),
				cell(l.CatalogNumber, 2, align.Left),
				cell(qty, 1, align.Right),
				cell(formatPLN(l.EffectiveUnitPrice()), 2, align.Right),
				cell(formatPLN(l.Breakdown.Tax), 1, align.Right),
				cell(formatPLN(l.Total), 2, align.Right),
			))
		} else {
			result = append(result, row.New(7).Add(
				cell(fmt.Sprintf("%d.", i+1), 1, align.Center),
				cell(l.Name, 5, align.Left),
				cell(qty, 1, align.Right),
				cell(formatPLN(l.EffectiveUnitPrice()), 2, align.Right),
				cell(formatPLN(l.Breakdown.Tax), 1, align.Right),
				cell(formatPLN(l.Total), 2, align.Right),
			))
		}
	}
	return result
}

func subtotalRow(label string, gross decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8),
		col.New(2).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(formatPLN(gross), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
	)
}

// totalsRow: net / VAT / gross block, right aligned.
func totalsRow(doc *orders.EstimateDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(24).Add(
		col.New(5),
		col.New(4).Add(
			label("Wartość netto:"),
			label(fmt.Sprintf("Podatek VAT (%d%%):", doc.VATRatePercent)),
			text.New("RAZEM DO ZAPŁATY:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2, Top: 14,
			}),
		),
		col.New(3).Add(
			value(formatPLN(doc.Total.Net)),
			value(formatPLN(doc.Total.Tax)),
			text.New(formatPLN(doc.Total.Gross), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1, Top: 14,
			}),
		),
	)
}

// totalOnlyRow: the single agreed figure, nothing else.
func totalOnlyRow(doc *orders.EstimateDocument) core.Row {
	return row.New(14).Add(
		col.New(6).Add(text.New("CAŁKOWITY KOSZT NAPRAWY:", props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 4, Color: colorPrimary,
		})),
		col.New(6).Add(text.New(formatPLN(doc.TotalRepairCost), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 4, Color: colorPrimary,
		})),
	)
}

func notesRows(notes string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("INFORMACJE DLA KLIENTA O STANIE POJAZDU", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Color: colorPrimary,
			}),
		)),
	}
	for _, ln := range strings.Split(notes, "\n") {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(ln, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

// signatureRow: acceptance signatures, client left, workshop right.
func signatureRow() core.Row {
	sig := func(caption string, a align.Type) core.Col {
		return col.New(5).Add(
			text.New(strings.Repeat(".", 40), props.Text{Size: 8, Align: a, Top: 10, Color: colorGray}),
			text.New(caption, props.Text{Size: 7, Align: a, Top: 15, Color: colorGray}),
		)
	}
	return row.New(22).Add(
		sig("podpis klienta", align.Left),
		col.New(2),
		sig("podpis wykonawcy", align.Right),
	)
}

// formatPLN renders an amount the Polish way: comma decimal separator,
// space as thousands separator, "zł" suffix. Ex: 1234.5 -> "1 234,50 zł".
func formatPLN(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + fracPart + " zł"
	if neg {
		out = "-" + out
	}
	return out
}
