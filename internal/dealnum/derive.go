// Package dealnum extracts financial deal numbers from conversation text
// via a structured-extraction service and derives offer math from them.
package dealnum

import "github.com/sells-group/motivation-cli/internal/model"

// Derive computes the calculated quantities from an extracted field set:
//
//	total_payoff     = mortgage_balance + arrears       when mortgage_balance > 0
//	minimum_offer    = total_payoff + seller_net        when both are present and non-zero
//	equity_available = estimated_value - total_payoff   when estimated_value > 0 and payoff present
//
// Missing extracted values are treated as zero for the arithmetic, matching
// the truthiness semantics of the extraction contract.
func Derive(extracted model.ExtractedNumbers) model.CalculatedNumbers {
	mortgage := orZero(extracted.MortgageBalance)
	arrears := orZero(extracted.Arrears)
	sellerNet := orZero(extracted.SellerNetDesired)
	estimated := orZero(extracted.EstimatedValue)

	var calc model.CalculatedNumbers

	if mortgage > 0 {
		payoff := mortgage + arrears
		calc.TotalPayoff = &payoff

		if payoff != 0 && sellerNet != 0 {
			minOffer := payoff + sellerNet
			calc.MinimumOffer = &minOffer
		}
		if estimated > 0 && payoff != 0 {
			equity := estimated - payoff
			calc.EquityAvailable = &equity
		}
	}

	return calc
}

// CountFields returns how many extracted fields carry a non-null,
// non-empty, non-zero value.
func CountFields(extracted model.ExtractedNumbers) int {
	count := 0
	for _, v := range []*float64{
		extracted.MortgageBalance, extracted.Arrears, extracted.MonthsBehind,
		extracted.MonthlyPayment, extracted.SellerNetDesired, extracted.AskingPrice,
		extracted.EstimatedValue, extracted.PropertyTaxesAnnual, extracted.HOAMonthly,
		extracted.RepairCosts, extracted.Bedrooms, extracted.Bathrooms,
		extracted.SquareFeet, extracted.InterestRate, extracted.DaysUntilForeclosure,
	} {
		if v != nil && *v != 0 {
			count++
		}
	}
	if extracted.AdditionalNotes != "" {
		count++
	}
	return count
}

// ExtractionConfidence maps the extracted-field count onto [30,95] at 8
// points per field. A failed extraction reports 0 instead.
func ExtractionConfidence(fieldsExtracted int) int {
	confidence := fieldsExtracted * 8
	if confidence < 30 {
		confidence = 30
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
