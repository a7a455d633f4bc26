// Package definition holds the declarative form of a zone: plain data that
// can be written in YAML, CUE or JSON, validated with coded errors, hashed
// into a content-addressed ID, and built into a zone.Map.
//
// Three kinds exist:
//   - fixed: a single offset forever
//   - daylight: a standard offset plus exactly two alternating yearly rules
//   - precalculated: explicit contiguous periods, optionally handing over to
//     a fixed or daylight tail
//
// Instants are RFC 3339 strings in UTC, offsets are "+05:30" style strings
// and rule times are "[-]h:mm[:ss]". All JSON tags use snake_case.
package definition
