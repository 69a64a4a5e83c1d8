// Package model defines the value types shared across the scaper engine:
// the finite alphabets (Mode, Vehicle, Activity), the tagged-union types
// (Location, Decision), the per-agent MDP state (State), the population
// input (Agent), and the estimation/serialization outputs (Trip, DayPath,
// Alternative, Choiceset).
//
// Every type here is a plain value type. Invariant enforcement that needs
// model configuration (day length, max tracked duration per activity,
// whether an agent has a workzone) lives in package statespace, which is
// the sole authority on what counts as a feasible State; model itself only
// rejects a negative zone in the Location constructors. Decision values
// are not validated here.
package model
