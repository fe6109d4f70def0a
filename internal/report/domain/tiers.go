package domain

// gcTier maps a production-cost-per-kg upper bound to the growing charge paid
// per kg. Bounds are inclusive and must stay sorted ascending.
type gcTier struct {
	upperBound float64
	value      float64
}

var gcTiers = []gcTier{
	{69.99, 16.0},
	{70.5, 13.8},
	{71.0, 13.4},
	{71.5, 13.0},
	{72.0, 12.6},
	{72.5, 12.2},
	{73.0, 11.8},
	{73.5, 11.4},
	{74.0, 11.15},
	{74.5, 10.9},
	{75.0, 10.65},
	{75.5, 10.4},
	{76.0, 10.15},
	{76.5, 9.9},
	{77.0, 9.65},
	{77.5, 9.4},
	{78.0, 9.2},
	{78.5, 9.0},
	{79.0, 8.8},
	{79.5, 8.6},
	{80.0, 8.4},
	{80.5, 8.2},
	{81.0, 8.0},
	{81.5, 7.8},
	{82.0, 7.65},
	{82.5, 7.5},
	{83.0, 7.35},
	{83.5, 7.2},
	{84.0, 7.1},
	{84.5, 7.0},
	{85.0, 6.9},
	{86.0, 6.8},
	{87.0, 6.7},
	{88.0, 6.6},
}

// gcFloor is paid on any production cost above the last tier bound.
const gcFloor = 6.5

// GCPerKg returns the growing charge per kg for a production cost per kg.
func GCPerKg(productionCostPerKg float64) float64 {
	for _, tier := range gcTiers {
		if productionCostPerKg <= tier.upperBound {
			return tier.value
		}
	}
	return gcFloor
}
