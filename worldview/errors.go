package worldview

import "errors"

// ErrUnknownMode indicates a Network has no ModeLOS entry for a requested
// mode.
var ErrUnknownMode = errors.New("worldview: unknown mode")

// ErrZoneOutOfRange indicates a Location referenced a zone outside
// [0, NumZones) or, for a SampledWorld, a zone absent from the sample.
var ErrZoneOutOfRange = errors.New("worldview: zone out of range")

// ErrEmptySample indicates SampleZones was asked for a sample of size <= 0.
var ErrEmptySample = errors.New("worldview: empty zone sample requested")
