package matrix

// CollapseDestination sums a Mat's logical values across its destination
// axis, producing the Mat one rank down that carries only the origin axis
// (or no axis at all). This is the reduction the value-function engine
// applies to a compressed Travel(NonFixed(All)) option's per-destination
// Phi values before folding that option into a state's decision total: a
// state's value function has no destination axis, only its options do.
// RowVec collapses to Scalar, ODMat collapses to ColVec.
// Scalar and ColVec have no destination axis and are returned unchanged
// (cloned, so callers may mutate the result freely).
func CollapseDestination(m *Mat) *Mat {
	switch m.Shp {
	case Scalar, ColVec:
		return m.Clone()
	case RowVec:
		return NewScalar(m.Sum())
	case ODMat:
		n := m.NumZones
		out, _ := NewZeroed(ColVec, n)
		for origin := 0; origin < n; origin++ {
			base := origin * n
			var total float64
			for dest := 0; dest < n; dest++ {
				total += m.Data[base+dest]
			}
			out.Data[origin] = total * m.Scale
		}
		return out
	default:
		panic(ErrShapeMismatch)
	}
}

// DecisionShape reports the Mat shape an option's utility accumulator needs
// given whether the deciding state ranges over all origin zones at once
// (originMany, i.e. state.Location.IsWildcard()) and whether the decision
// itself ranges over all destination zones (destMany, i.e. a Travel
// decision whose TravelDest.IsWildcard()).
func DecisionShape(originMany, destMany bool) Shape {
	switch {
	case !originMany && !destMany:
		return Scalar
	case !originMany && destMany:
		return RowVec
	case originMany && !destMany:
		return ColVec
	default:
		return ODMat
	}
}
