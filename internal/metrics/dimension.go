package metrics

// Dimension identifies one rubric axis.
type Dimension int

const (
	DimensionFactual Dimension = iota
	DimensionReasoning
	DimensionHelpfulness
	DimensionClarity
	DimensionSafety
)

// Dimensions lists every rubric axis in display order.
var Dimensions = []Dimension{
	DimensionFactual,
	DimensionReasoning,
	DimensionHelpfulness,
	DimensionClarity,
	DimensionSafety,
}

// Key is the JSON field name of the dimension.
func (d Dimension) Key() string {
	switch d {
	case DimensionFactual:
		return "factual"
	case DimensionReasoning:
		return "reasoning"
	case DimensionHelpfulness:
		return "helpfulness"
	case DimensionClarity:
		return "clarity"
	case DimensionSafety:
		return "safety"
	}
	return ""
}

// Label is the long display name used by the severity and radar views.
func (d Dimension) Label() string {
	switch d {
	case DimensionFactual:
		return "Factual Accuracy"
	case DimensionReasoning:
		return "Reasoning Quality"
	case DimensionHelpfulness:
		return "Helpfulness"
	case DimensionClarity:
		return "Clarity / Style"
	case DimensionSafety:
		return "Safety Compliance"
	}
	return ""
}

// ShortLabel is the compact name used by the training comparison bars.
func (d Dimension) ShortLabel() string {
	switch d {
	case DimensionFactual:
		return "Factual"
	case DimensionReasoning:
		return "Reasoning"
	case DimensionHelpfulness:
		return "Helpful"
	case DimensionClarity:
		return "Clarity"
	case DimensionSafety:
		return "Safety"
	}
	return ""
}

func (d Dimension) String() string {
	return d.Key()
}
