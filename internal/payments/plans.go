package payments

import (
	"github.com/shopspring/decimal"

	"github.com/orienta-za/orienta-backend/pkg/enums"
)

// planCurrency is fixed for every plan.
const planCurrency = "ZAR"

// Plan describes one purchasable unlock tier.
type Plan struct {
	Type     enums.PlanType
	Name     string
	Amount   decimal.Decimal
	Currency string
}

// AmountCents returns the plan price in minor units.
func (p Plan) AmountCents() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).IntPart()
}

var planTable = map[enums.PlanType]Plan{
	enums.PlanTypeLearner: {
		Type:     enums.PlanTypeLearner,
		Name:     "Orienta Learner Unlock",
		Amount:   decimal.NewFromFloat(79.0),
		Currency: planCurrency,
	},
	enums.PlanTypePremium: {
		Type:     enums.PlanTypePremium,
		Name:     "Orienta Premium Unlock",
		Amount:   decimal.NewFromFloat(129.0),
		Currency: planCurrency,
	},
}

// PlanFor resolves the plan for the submitted type.
func PlanFor(planType enums.PlanType) (Plan, bool) {
	plan, ok := planTable[planType]
	return plan, ok
}
