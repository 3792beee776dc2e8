package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

// baseInputs is the reference scenario used across tests: 50g of filament at
// 100/kg, a 3h print on a 250W printer, 5% failure rate and 30% margin.
func baseInputs() Inputs {
	return Inputs{
		PieceName:       "Vaso",
		Material:        "PLA",
		Quantity:        1,
		Complexity:      ComplexitySimple,
		FilamentPrice:   100,
		FilamentUsed:    50,
		PrintTimeHours:  3,
		PrinterPower:    250,
		EnergyRate:      0.75,
		PrinterValue:    5000,
		PrinterLifespan: 5000,
		MaintenanceCost: 1,
		FailureRate:     5,
		ProfitMargin:    30,
	}
}

func TestCompute_ReferenceScenario(t *testing.T) {
	res := Compute(baseInputs())

	nearlyEqual(t, "filamentCost", res.FilamentCost, 5.0)
	nearlyEqual(t, "energyCost", res.EnergyCost, 0.5625)
	nearlyEqual(t, "wearCost", res.WearCost, 3.0)
	nearlyEqual(t, "maintenanceTotalCost", res.MaintenanceTotalCost, 3.0)
	nearlyEqual(t, "failureCost", res.FailureCost, 0.578125)
	nearlyEqual(t, "productionCost", res.ProductionCost, 12.140625)
	nearlyEqual(t, "profitAmount", res.ProfitAmount, 3.6421875)
	nearlyEqual(t, "finalPrice", res.FinalPrice, 15.7828125)
	nearlyEqual(t, "finalPriceWithFee", res.FinalPriceWithFee, 15.7828125)
	nearlyEqual(t, "complexityMultiplier", res.ComplexityMultiplier, 1.0)
	nearlyEqual(t, "totalTime", res.TotalTime, 3.0)
}

func TestCompute_Deterministic(t *testing.T) {
	in := baseInputs()
	first := Compute(in)
	second := Compute(in)

	if first != second {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestCompute_PrintTimeCombinesHoursAndMinutes(t *testing.T) {
	in := baseInputs()
	in.PrintTimeHours = 2
	in.PrintTimeMinutes = 30

	nearlyEqual(t, "printTime", in.PrintTime(), 2.5)
	nearlyEqual(t, "maintenanceTotalCost", Compute(in).MaintenanceTotalCost, 2.5)
}

func TestCompute_ZeroFeeMatchesFinalPrice(t *testing.T) {
	in := baseInputs()
	in.AdditionalFee = 0

	res := Compute(in)
	nearlyEqual(t, "finalPriceWithFee", res.FinalPriceWithFee, res.FinalPrice)
}

func TestCompute_FeeAppliesToPostMarginPrice(t *testing.T) {
	in := baseInputs()
	in.AdditionalFee = 10

	res := Compute(in)
	nearlyEqual(t, "finalPriceWithFee", res.FinalPriceWithFee, res.FinalPrice*1.10)
}

func TestCompute_ZeroDiscountWholesaleEqualsFinal(t *testing.T) {
	in := baseInputs()
	in.Quantity = 4
	in.WholesaleDiscount = 0

	res := Compute(in)
	nearlyEqual(t, "wholesalePrice", res.WholesalePrice, res.FinalPriceWithFee)
	nearlyEqual(t, "wholesalePricePerUnit", res.WholesalePricePerUnit, res.FinalPricePerUnit)
}

func TestCompute_WholesaleDiscountApplied(t *testing.T) {
	in := baseInputs()
	in.WholesaleDiscount = 20

	res := Compute(in)
	nearlyEqual(t, "wholesalePrice", res.WholesalePrice, res.FinalPriceWithFee*0.8)
}

func TestCompute_PerUnitConsistency(t *testing.T) {
	for _, quantity := range []int{1, 2, 3, 7, 50} {
		in := baseInputs()
		in.Quantity = quantity
		in.AdditionalFee = 12

		res := Compute(in)
		q := float64(quantity)

		relErr := math.Abs(res.CostPerUnit*q-res.ProductionCost) / res.ProductionCost
		if relErr > 1e-6 {
			t.Fatalf("quantity %d: costPerUnit*q diverges from productionCost by %v", quantity, relErr)
		}
		relErr = math.Abs(res.FinalPricePerUnit*q-res.FinalPriceWithFee) / res.FinalPriceWithFee
		if relErr > 1e-6 {
			t.Fatalf("quantity %d: finalPricePerUnit*q diverges from finalPriceWithFee by %v", quantity, relErr)
		}
	}
}

func TestCompute_ComplexityMultiplierOnlyAffectsPrintCosts(t *testing.T) {
	in := baseInputs()
	in.HourlyRate = 40
	in.ActiveWorkTime = 2
	in.FinishingCost = 10
	in.PackagingCost = 3
	in.ExtraCost = 2
	in.FailureRate = 0

	simple := Compute(in)

	in.Complexity = ComplexityHigh
	high := Compute(in)

	printRelated := simple.FilamentCost + simple.EnergyCost + simple.WearCost + simple.MaintenanceTotalCost
	nearlyEqual(t, "productionCost delta", high.ProductionCost-simple.ProductionCost, printRelated*0.35)

	// Non-machine costs must be untouched by the multiplier.
	nearlyEqual(t, "laborCost", high.LaborCost, simple.LaborCost)
	nearlyEqual(t, "packagingCost", high.PackagingCost, simple.PackagingCost)
	nearlyEqual(t, "extraCost", high.ExtraCost, simple.ExtraCost)
}

func TestComplexityMultiplierTable(t *testing.T) {
	nearlyEqual(t, "simple", ComplexitySimple.Multiplier(), 1.00)
	nearlyEqual(t, "intermediate", ComplexityIntermediate.Multiplier(), 1.15)
	nearlyEqual(t, "high", ComplexityHigh.Multiplier(), 1.35)
	nearlyEqual(t, "unknown", Complexity("weird").Multiplier(), 1.00)
}

func TestCompute_ZeroFailureRateMatchesCostWithComplexity(t *testing.T) {
	in := baseInputs()
	in.FailureRate = 0

	res := Compute(in)
	nearlyEqual(t, "failureCost", res.FailureCost, 0)
	// productionCost == costWithComplexity exactly when failure is zero.
	nearlyEqual(t, "productionCost", res.ProductionCost, 11.5625)
}

func TestCompute_ZeroLifespanDisablesWear(t *testing.T) {
	in := baseInputs()
	in.PrinterLifespan = 0

	res := Compute(in)
	nearlyEqual(t, "wearCost", res.WearCost, 0)
	if math.IsNaN(res.ProductionCost) || math.IsInf(res.ProductionCost, 0) {
		t.Fatalf("productionCost is not finite: %v", res.ProductionCost)
	}
}

func TestCompute_ZeroQuantityTreatedAsOne(t *testing.T) {
	in := baseInputs()
	in.Quantity = 0

	res := Compute(in)
	nearlyEqual(t, "costPerUnit", res.CostPerUnit, res.ProductionCost)
	nearlyEqual(t, "profitPerUnit", res.ProfitPerUnit, res.ProfitAmount)
	nearlyEqual(t, "finalPricePerUnit", res.FinalPricePerUnit, res.FinalPriceWithFee)
}

func TestCompute_PackagingAndExtrasAddedFlat(t *testing.T) {
	in := baseInputs()
	in.FailureRate = 0
	base := Compute(in)

	in.PackagingCost = 4.5
	in.ExtraCost = 1.5
	res := Compute(in)

	nearlyEqual(t, "productionCost", res.ProductionCost, base.ProductionCost+6)
}

func TestCompute_NaNInputPropagates(t *testing.T) {
	in := baseInputs()
	in.FilamentPrice = math.NaN()

	res := Compute(in)
	if !math.IsNaN(res.FilamentCost) || !math.IsNaN(res.ProductionCost) {
		t.Fatalf("expected NaN to propagate, got filament=%v production=%v", res.FilamentCost, res.ProductionCost)
	}
}
