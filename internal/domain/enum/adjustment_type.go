package enum

// AdjustmentType is the direction of a manual stock adjustment.
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"
	AdjustmentRemove AdjustmentType = "remove"
)

// IsValid reports whether the adjustment type is a known value.
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentAdd || t == AdjustmentRemove
}
