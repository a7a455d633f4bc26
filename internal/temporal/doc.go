// Package temporal provides the immutable value types used by every zone
// computation: Instant, Offset, LocalDateTime and Duration.
//
// This package imports nothing internal. All other internal packages import
// temporal; keeping it at the bottom of the graph avoids circular
// dependencies.
//
// Key design constraints:
//   - All values are 100 ns ticks held in an int64; no floats anywhere
//   - The calendar is the proleptic ISO (Gregorian) calendar, years -9998..9999
//   - BeforeMinValue and AfterMaxValue are unbounded interval endpoints, not
//     valid instants; arithmetic leaves them unchanged
//   - Values are comparable with == and safe to share between goroutines
package temporal
