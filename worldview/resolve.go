package worldview

import (
	"fmt"

	"github.com/scaper-abm/scaper/matrix"
	"github.com/scaper-abm/scaper/model"
)

// resolveLoc reduces a model.Location to the zone index/wildcard pair the
// LOS-extraction helpers need. zIndex translates a raw zone number into the
// backing array's own indexing (identity for FullWorld, sample position for
// SampledWorld) and must return an error for a zone the world cannot serve.
func resolveLoc(loc model.Location, zIndex func(int) (int, error)) (idx int, many bool, err error) {
	if loc.IsWildcard() {
		return 0, true, nil
	}
	idx, err = zIndex(loc.Zone)
	if err != nil {
		return 0, false, fmt.Errorf("worldview.resolveLoc: %w", err)
	}
	return idx, false, nil
}

// extractMat pulls the sub-array named by (originIdx, destIdx, originMany,
// destMany) out of a dense row-major NumZones*NumZones array and wraps it in
// a fresh, Scale-1 *matrix.Mat. RowVec and ODMat results alias arr directly
// (safe: World callers never mutate a Mat returned by a query method);
// ColVec is copied because a matrix column is strided, not contiguous, in
// row-major storage.
func extractMat(arr []float64, numZones int, originIdx, destIdx int, originMany, destMany bool) *matrix.Mat {
	switch {
	case !originMany && !destMany:
		return matrix.NewScalar(arr[originIdx*numZones+destIdx])
	case !originMany && destMany:
		row := arr[originIdx*numZones : originIdx*numZones+numZones]
		return matrix.New(matrix.RowVec, numZones, row)
	case originMany && !destMany:
		col := make([]float64, numZones)
		for o := 0; o < numZones; o++ {
			col[o] = arr[o*numZones+destIdx]
		}
		return matrix.New(matrix.ColVec, numZones, col)
	default:
		return matrix.New(matrix.ODMat, numZones, arr)
	}
}
