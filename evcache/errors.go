package evcache

import "errors"

// ErrTimeOutOfRange indicates Cache was asked to write a timestep outside
// [0, DayLength).
var ErrTimeOutOfRange = errors.New("evcache: timestep out of range")

// ErrShapeMismatch indicates Cache received a Mat whose cell count does not
// match the CacheKeyState it is being written under (one cell for
// Residence/Workplace, NumZones cells for NonFixed-All).
var ErrShapeMismatch = errors.New("evcache: mat shape does not match cache key")
