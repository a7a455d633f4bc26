// Package recurrence implements yearly transition rules such as "the last
// Sunday of March at 01:00 UTC" with an inclusive window of years in which
// the rule applies.
//
// A YearOffset locates the rule inside a calendar year; a Recurrence adds the
// rule's name, its savings and its validity window, and searches forwards or
// backwards from an instant for the nearest transition. Searches inspect at
// most a handful of candidate years and report false once the window is
// exhausted.
package recurrence
