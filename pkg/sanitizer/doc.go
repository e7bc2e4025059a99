// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input is never rejected here; it is reduced to
// the empty string so validation can report it as missing.
package sanitizer
