package enum

// DiscountType selects how a sale discount is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid reports whether the discount type is a known value.
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}
