// Package valuefn implements the recursive, cache-memoized logsum
// value-function engine: for each Good state it rents a Mat per option,
// accumulates u(state, decision) via the statespace.UtilitySpec
// collaborator, adds interpolated expected future utility from the
// evcache.Cache row of the option's next state(s), exponentiates to Phi,
// sums and logs to V-bar, and writes V-bar back into the cache at the
// current floor(time) slot.
//
// The traversal is an explicit walker struct carrying the collaborators,
// a recursion-depth guard instead of a context-cancellation check, and
// cache-aware pre/post behavior around each recursive step.
package valuefn
