package kernel

import "restaurant/internal/pkg/errs"

// MaxQuantity is the most units of one menu item a single order line may carry.
const MaxQuantity = 999

// CheckQuantityLimit fails when quantity exceeds MaxQuantity. Non-positive quantities
// are rejected by the callers with their own messages.
func CheckQuantityLimit(quantity int) error {
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	return nil
}
