// Package choiceset builds one model.Choiceset per agent: the
// required-zone computation feeding zone sampling, observed-trip<->DayPath
// conversion, per-alternative sampling corrections, and N
// simulated alternatives deduplicated against the observed path.
package choiceset
