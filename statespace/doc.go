// Package statespace implements the decision-generation, feasibility, and
// transition contract for a day's Markov decision process: Options lists
// the feasible Decisions out of a State, Classify labels a State
// Good/Bad/End, and
// NextState/NextSingleState/NextIntegralTimeStates advance a State along one
// Decision. UtilitySpec is the collaborator interface valuefn and simulate
// use to accumulate u(state, decision) into a rented matrix.Mat.
package statespace
