package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
)

// Pricing modes for the printable estimate.
const (
	PricingModeDetailed  = "DETAILED"
	PricingModeTotalOnly = "TOTAL_ONLY"
)

// ShopIdentity is the workshop letterhead printed on every estimate.
type ShopIdentity struct {
	Name    string
	Address string
	City    string
	Phone   string
}

// EstimateVehicle is the vehicle block of an estimate.
type EstimateVehicle struct {
	Manufacturer string
	Model        string
	PlateNumber  string
	VIN          string
	Year         int
}

// EstimateLine is one priced row of an estimate: the line itself plus its
// VAT breakdown over the gross total.
type EstimateLine struct {
	pricing.LineItem
	Breakdown pricing.TaxBreakdown
}

// EstimateDocument is everything the PDF renderer needs, fully computed.
// Assembly never fails; readiness is checked up front with ReadyForEstimate.
type EstimateDocument struct {
	Shop       ShopIdentity
	ClientName string
	Vehicle    EstimateVehicle

	Services  []EstimateLine
	Materials []EstimateLine

	VATRatePercent    int
	ServicesSubtotal  pricing.TaxBreakdown
	MaterialsSubtotal pricing.TaxBreakdown
	Total             pricing.TaxBreakdown

	// Mode is DETAILED or TOTAL_ONLY. In TOTAL_ONLY the per-line and subtotal
	// money is suppressed and TotalRepairCost is the only figure shown.
	Mode            string
	TotalRepairCost decimal.Decimal

	Notes    string
	IssuedAt time.Time
	IssuedBy string
}

// AssembleInput collects the raw pieces of an estimate before computation.
type AssembleInput struct {
	Shop            ShopIdentity
	Client          *entity.Client
	Vehicle         *entity.Vehicle
	Services        []pricing.LineItem
	Materials       []pricing.LineItem
	VATRatePercent  int
	Mode            string
	TotalRepairCost *decimal.Decimal
	Notes           string
	IssuedAt        time.Time
	IssuedBy        string
}

// ReadyForEstimate reports whether an estimate can be generated: the client
// needs a full name, the vehicle a manufacturer and model, and there must be
// at least one priced line. Returns ErrEstimateNotReady otherwise.
func ReadyForEstimate(client *entity.Client, vehicle *entity.Vehicle, lineCount int) error {
	switch {
	case client == nil || !client.HasCompleteName():
		return fmt.Errorf("%w: client first and last name required", domain.ErrEstimateNotReady)
	case vehicle == nil || !vehicle.HasCompleteIdentity():
		return fmt.Errorf("%w: vehicle manufacturer and model required", domain.ErrEstimateNotReady)
	case lineCount < 1:
		return fmt.Errorf("%w: at least one service or material line required", domain.ErrEstimateNotReady)
	}
	return nil
}

// AssembleEstimate computes all derived money on the document: per-line VAT
// breakdowns, group subtotals and the combined total. An unknown mode falls
// back to DETAILED; in TOTAL_ONLY a missing TotalRepairCost falls back to the
// computed combined total.
func AssembleEstimate(in AssembleInput) *EstimateDocument {
	mode := strings.ToUpper(strings.TrimSpace(in.Mode))
	if mode != PricingModeTotalOnly {
		mode = PricingModeDetailed
	}

	doc := &EstimateDocument{
		Shop:           in.Shop,
		VATRatePercent: in.VATRatePercent,
		Mode:           mode,
		Notes:          strings.TrimSpace(in.Notes),
		IssuedAt:       in.IssuedAt,
		IssuedBy:       strings.TrimSpace(in.IssuedBy),
	}
	if in.Client != nil {
		doc.ClientName = in.Client.FullName()
	}
	if in.Vehicle != nil {
		doc.Vehicle = EstimateVehicle{
			Manufacturer: in.Vehicle.Manufacturer,
			Model:        in.Vehicle.Model,
			PlateNumber:  in.Vehicle.PlateNumber,
			VIN:          in.Vehicle.VIN,
			Year:         in.Vehicle.Year,
		}
	}

	doc.Services = breakdownLines(in.Services, in.VATRatePercent)
	doc.Materials = breakdownLines(in.Materials, in.VATRatePercent)
	doc.ServicesSubtotal = pricing.Breakdown(pricing.SumGross(in.Services), in.VATRatePercent)
	doc.MaterialsSubtotal = pricing.Breakdown(pricing.SumGross(in.Materials), in.VATRatePercent)
	doc.Total = pricing.Breakdown(pricing.CombinedTotal(in.Services, in.Materials), in.VATRatePercent)

	if mode == PricingModeTotalOnly {
		if in.TotalRepairCost != nil {
			doc.TotalRepairCost = pricing.Round2(*in.TotalRepairCost)
		} else {
			doc.TotalRepairCost = doc.Total.Gross
		}
	}
	return doc
}

func breakdownLines(items []pricing.LineItem, ratePercent int) []EstimateLine {
	out := make([]EstimateLine, 0, len(items))
	for _, it := range items {
		out = append(out, EstimateLine{
			LineItem:  it,
			Breakdown: pricing.Breakdown(it.Total, ratePercent),
		})
	}
	return out
}

var polishMonths = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatDatePolish renders a date the way the printed estimate shows it:
// "5 marca 2024", genitive month, no zero padding.
func FormatDatePolish(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), polishMonths[t.Month()-1], t.Year())
}

// EstimateFilename is the suggested download name for an estimate PDF:
// estimate_<plate>_<d>-<m>-<yyyy>.pdf with unpadded date parts. A vehicle
// without a plate gets the placeholder "pojazd".
func EstimateFilename(plate string, t time.Time) string {
	plate = strings.ReplaceAll(strings.TrimSpace(plate), " ", "")
	if plate == "" {
		plate = "pojazd"
	}
	return fmt.Sprintf("estimate_%s_%d-%d-%d.pdf", plate, t.Day(), int(t.Month()), t.Year())
}
