package mathutil

import "math"

// InfCost is the cost of an impossible path. Tokens whose accumulated cost
// reaches InfCost are never retained.
var InfCost = math.Inf(1)

// IsCost reports whether c is a usable (finite, non-NaN) path cost.
func IsCost(c float64) bool {
	return !math.IsInf(c, 0) && !math.IsNaN(c)
}
