package dataio

import "errors"

// ErrInputFormat reports a missing column, a malformed enum value, or an
// unsorted network file. It is fatal at startup and never recovered from
// mid-run.
var ErrInputFormat = errors.New("dataio: input file does not match the expected format")
