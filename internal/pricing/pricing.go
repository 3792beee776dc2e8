package pricing

// Complexity classifies how demanding a print is. The multiplier is applied
// only to machine-related costs (filament, energy, wear, maintenance); labor,
// finishing, packaging and extras stay outside it.
type Complexity string

const (
	ComplexitySimple       Complexity = "simple"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityHigh         Complexity = "high"
)

var complexityMultipliers = map[Complexity]float64{
	ComplexitySimple:       1.00,
	ComplexityIntermediate: 1.15,
	ComplexityHigh:         1.35,
}

// Multiplier returns the fixed cost multiplier for the complexity class.
// Unknown values fall back to the simple multiplier.
func (c Complexity) Multiplier() float64 {
	if m, ok := complexityMultipliers[c]; ok {
		return m
	}
	return 1.00
}

// Inputs describes a single print job: the piece, the machine parameters, the
// labor involved and the commercial knobs. Optional fields default to zero
// (packaging, extras, wholesale discount) or false (rounding, wholesale
// preference); callers are expected to normalize quantity to at least 1 and
// reject empty piece names before computing.
type Inputs struct {
	PieceName      string     `json:"pieceName"`
	ClientName     string     `json:"clientName,omitempty"`
	Material       string     `json:"material"`
	Quantity       int        `json:"quantity"`
	Complexity     Complexity `json:"complexity"`
	ManualPainting bool       `json:"manualPainting,omitempty"`

	FilamentPrice    float64 `json:"filamentPrice"` // currency per kg
	FilamentUsed     float64 `json:"filamentUsed"`  // grams
	PrintTimeHours   float64 `json:"printTimeHours"`
	PrintTimeMinutes float64 `json:"printTimeMinutes"`
	PrinterPower     float64 `json:"printerPower"`    // watts
	EnergyRate       float64 `json:"energyRate"`      // currency per kWh
	PrinterValue     float64 `json:"printerValue"`    // acquisition cost
	PrinterLifespan  float64 `json:"printerLifespan"` // rated hours, <=0 disables wear

	HourlyRate      float64 `json:"hourlyRate"`      // currency per hour
	ActiveWorkTime  float64 `json:"activeWorkTime"`  // hours
	FinishingCost   float64 `json:"finishingCost"`   // flat
	MaintenanceCost float64 `json:"maintenanceCost"` // currency per print hour
	FailureRate     float64 `json:"failureRate"`     // percent, 0-100
	ProfitMargin    float64 `json:"profitMargin"`    // percent markup on cost
	AdditionalFee   float64 `json:"additionalFee"`   // percent on post-margin price

	PackagingCost float64 `json:"packagingCost,omitempty"` // flat
	ExtraCost     float64 `json:"extraCost,omitempty"`     // flat

	DesiredPrice      *float64 `json:"desiredPrice,omitempty"`
	RoundFinalPrice   bool     `json:"roundFinalPrice,omitempty"`
	WholesaleDiscount float64  `json:"wholesaleDiscount,omitempty"` // percent, 0-100
	UseWholesalePrice bool     `json:"useWholesalePrice,omitempty"`
}

// PrintTime returns the print duration in decimal hours.
func (in Inputs) PrintTime() float64 {
	return in.PrintTimeHours + in.PrintTimeMinutes/60
}

// EffectiveQuantity is the unit count used for every per-unit division,
// clamped to at least 1.
func (in Inputs) EffectiveQuantity() int {
	if in.Quantity < 1 {
		return 1
	}
	return in.Quantity
}

// Results is the full cost and price breakdown for one Inputs record. It is a
// pure function of the inputs: recomputed from scratch on every change, never
// mutated in place.
type Results struct {
	FilamentCost         float64 `json:"filamentCost"`
	EnergyCost           float64 `json:"energyCost"`
	WearCost             float64 `json:"wearCost"`
	LaborCost            float64 `json:"laborCost"`
	MaintenanceTotalCost float64 `json:"maintenanceTotalCost"`
	PackagingCost        float64 `json:"packagingCost"`
	ExtraCost            float64 `json:"extraCost"`
	FailureCost          float64 `json:"failureCost"`
	ComplexityMultiplier float64 `json:"complexityMultiplier"`

	ProductionCost        float64 `json:"productionCost"`
	CostPerUnit           float64 `json:"costPerUnit"`
	ProfitAmount          float64 `json:"profitAmount"`
	ProfitPerUnit         float64 `json:"profitPerUnit"`
	FinalPrice            float64 `json:"finalPrice"`
	FinalPriceWithFee     float64 `json:"finalPriceWithFee"`
	FinalPricePerUnit     float64 `json:"finalPricePerUnit"`
	WholesalePrice        float64 `json:"wholesalePrice"`
	WholesalePricePerUnit float64 `json:"wholesalePricePerUnit"`
	TotalTime             float64 `json:"totalTime"` // print + active work, hours
}

// Compute derives the complete cost and price breakdown for a print job.
//
// It is a total function: there are no error cases. Divisions are guarded
// (quantity clamped to >=1, wear skipped when the printer lifespan is not
// positive). Out-of-domain values such as negative prices or NaN are not
// rejected; they propagate arithmetically and validation belongs to the
// caller.
func Compute(in Inputs) Results {
	printTime := in.PrintTime()

	// Price per kg -> price per gram, times grams used.
	filamentCost := (in.FilamentPrice / 1000) * in.FilamentUsed

	// Watts -> kW, times hours, times tariff.
	energyCost := (in.PrinterPower / 1000) * printTime * in.EnergyRate

	// Straight-line depreciation allocated to this job's print duration.
	wearCost := 0.0
	if in.PrinterLifespan > 0 {
		wearCost = (in.PrinterValue / in.PrinterLifespan) * printTime
	}

	laborCost := in.HourlyRate * in.ActiveWorkTime
	maintenanceTotal := in.MaintenanceCost * printTime

	multiplier := in.Complexity.Multiplier()

	// The multiplier covers machine-related costs only; labor, finishing,
	// packaging and extras are added outside it.
	printRelatedCost := filamentCost + energyCost + wearCost + maintenanceTotal
	costWithComplexity := printRelatedCost*multiplier +
		laborCost +
		in.FinishingCost +
		in.PackagingCost +
		in.ExtraCost

	failureCost := costWithComplexity * (in.FailureRate / 100)
	productionCost := costWithComplexity + failureCost

	quantity := float64(in.EffectiveQuantity())
	costPerUnit := productionCost / quantity

	profitAmount := productionCost * (in.ProfitMargin / 100)
	profitPerUnit := profitAmount / quantity

	finalPrice := productionCost + profitAmount
	finalPriceWithFee := finalPrice * (1 + in.AdditionalFee/100)
	finalPricePerUnit := finalPriceWithFee / quantity

	wholesalePrice := finalPriceWithFee * (1 - in.WholesaleDiscount/100)
	wholesalePricePerUnit := wholesalePrice / quantity

	return Results{
		FilamentCost:         filamentCost,
		EnergyCost:           energyCost,
		WearCost:             wearCost,
		LaborCost:            laborCost,
		MaintenanceTotalCost: maintenanceTotal,
		PackagingCost:        in.PackagingCost,
		ExtraCost:            in.ExtraCost,
		FailureCost:          failureCost,
		ComplexityMultiplier: multiplier,

		ProductionCost:        productionCost,
		CostPerUnit:           costPerUnit,
		ProfitAmount:          profitAmount,
		ProfitPerUnit:         profitPerUnit,
		FinalPrice:            finalPrice,
		FinalPriceWithFee:     finalPriceWithFee,
		FinalPricePerUnit:     finalPricePerUnit,
		WholesalePrice:        wholesalePrice,
		WholesalePricePerUnit: wholesalePricePerUnit,
		TotalTime:             printTime + in.ActiveWorkTime,
	}
}
