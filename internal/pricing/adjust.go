package pricing

// Summary holds the effective figures shown while the user moves the markup
// slider or types a manual sale price. It never mutates the original inputs:
// every adjustment re-runs Compute from scratch with the live markup and then
// derives display metrics from the effective final price.
type Summary struct {
	Results Results `json:"results"`

	ProductionCost    float64 `json:"productionCost"`
	FeeValue          float64 `json:"feeValue"`
	FinalPrice        float64 `json:"finalPrice"`
	ManualPrice       bool    `json:"manualPrice"`
	Profit            float64 `json:"profit"`
	ROIPercent        float64 `json:"roiPercent"`
	RealMarginPercent float64 `json:"realMarginPercent"`

	WholesalePrice        float64 `json:"wholesalePrice"`
	WholesaleProfit       float64 `json:"wholesaleProfit"`
	ResellerProfit        float64 `json:"resellerProfit"`
	ResellerMarginPercent float64 `json:"resellerMarginPercent"`

	PricePerUnit           float64 `json:"pricePerUnit"`
	CostPerUnit            float64 `json:"costPerUnit"`
	FeePerUnit             float64 `json:"feePerUnit"`
	ProfitPerUnit          float64 `json:"profitPerUnit"`
	WholesalePricePerUnit  float64 `json:"wholesalePricePerUnit"`
	WholesaleProfitPerUnit float64 `json:"wholesaleProfitPerUnit"`
}

// Adjust recomputes the breakdown with profit margin replaced by markup and
// derives the effective price, profit, ROI and wholesale split. When
// manualPrice is non-nil it substitutes the computed sale price; the fee is
// assumed unchanged in absolute terms, so the manual price also perturbs the
// wholesale economics.
//
// Per-unit figures are derived independently from the per-unit price, cost
// and fee rather than by dividing the aggregate profit. The two derivations
// agree by construction whenever the manual price scales exactly per unit.
func Adjust(in Inputs, markup float64, manualPrice *float64) Summary {
	in.ProfitMargin = markup
	res := Compute(in)

	cost := res.ProductionCost
	feeValue := res.FinalPriceWithFee - res.FinalPrice

	finalPrice := res.FinalPriceWithFee
	profit := res.ProfitAmount
	manual := manualPrice != nil
	if manual {
		finalPrice = *manualPrice
		profit = finalPrice - cost - feeValue
	}

	roi := 0.0
	if cost > 0 {
		roi = profit / cost * 100
	}
	realMargin := 0.0
	if finalPrice > 0 {
		realMargin = profit / finalPrice * 100
	}

	// Wholesale works off the effective price, not the raw calculator
	// output, so a manual override flows into the reseller split too.
	wholesalePrice := finalPrice * (1 - in.WholesaleDiscount/100)
	wholesaleProfit := wholesalePrice - cost - feeValue
	resellerProfit := finalPrice - wholesalePrice
	resellerMargin := 0.0
	if wholesalePrice > 0 {
		resellerMargin = resellerProfit / wholesalePrice * 100
	}

	quantity := float64(in.EffectiveQuantity())
	pricePerUnit := finalPrice / quantity
	costPerUnit := res.CostPerUnit
	feePerUnit := feeValue / quantity
	profitPerUnit := pricePerUnit - costPerUnit - feePerUnit
	wholesalePricePerUnit := wholesalePrice / quantity
	wholesaleProfitPerUnit := wholesalePricePerUnit - costPerUnit - feePerUnit

	return Summary{
		Results: res,

		ProductionCost:    cost,
		FeeValue:          feeValue,
		FinalPrice:        finalPrice,
		ManualPrice:       manual,
		Profit:            profit,
		ROIPercent:        roi,
		RealMarginPercent: realMargin,

		WholesalePrice:        wholesalePrice,
		WholesaleProfit:       wholesaleProfit,
		ResellerProfit:        resellerProfit,
		ResellerMarginPercent: resellerMargin,

		PricePerUnit:           pricePerUnit,
		CostPerUnit:            costPerUnit,
		FeePerUnit:             feePerUnit,
		ProfitPerUnit:          profitPerUnit,
		WholesalePricePerUnit:  wholesalePricePerUnit,
		WholesaleProfitPerUnit: wholesaleProfitPerUnit,
	}
}

// PriceBand rates a target price against the suggested one.
type PriceBand string

const (
	PriceBandLow   PriceBand = "low"   // more than 10% below, likely loss-making
	PriceBandIdeal PriceBand = "ideal" // within -10% .. +15% inclusive
	PriceBandHigh  PriceBand = "high"  // more than 15% above
)

// ClassifyDesiredPrice compares a target sale price against the suggested one
// and returns the band plus the percentage difference. A non-positive
// suggested price yields the ideal band with a zero difference.
func ClassifyDesiredPrice(desired, suggested float64) (PriceBand, float64) {
	if suggested <= 0 {
		return PriceBandIdeal, 0
	}

	diff := (desired - suggested) / suggested * 100
	switch {
	case diff < -10:
		return PriceBandLow, diff
	case diff > 15:
		return PriceBandHigh, diff
	default:
		return PriceBandIdeal, diff
	}
}
