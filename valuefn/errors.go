package valuefn

import "errors"

// ErrNegativeTime indicates a State or interpolation kernel input carried a
// negative continuous time; addEvUtility's floor()-based indexing requires
// non-negative input, and a negative arrival time can only mean a
// programmer error upstream, not a recoverable condition.
var ErrNegativeTime = errors.New("valuefn: negative time")

// ErrMaxDepthExceeded indicates the recursive traversal exceeded its
// recursion-depth guard, almost always a misconfigured DecisionStep/DayEnd
// pair producing an unbounded activity chain rather than a legitimate deep
// day plan.
var ErrMaxDepthExceeded = errors.New("valuefn: recursion depth exceeded")
