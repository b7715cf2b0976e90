// Package conv provides checked integer conversions between Go's int and the
// fixed-width types used for handles, ids and bitmap members.
//
// Handles are int32 so that chain links and record references stay four
// bytes wide. Every place that turns a length or capacity into a handle goes
// through this package so that exhausting the handle space is detected
// instead of silently wrapping.
//
// For conversions that are provably safe by construction (loop indices over
// an arena that already holds the value), use direct casts instead.
package conv
