// Package evcache implements the per-agent, per-latent-class expected-value
// memo: a CacheKeyState-indexed map of todo flags and EV rows that the
// value-function engine reads and writes as it recurses.
package evcache
