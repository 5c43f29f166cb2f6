// Package sanitizer normalizes requester input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result as once.
// Invalid input is never an error here; validation decides what to reject.
//
//   - Names and labels: trim and collapse inner whitespace
//   - Emails: trim and lowercase
package sanitizer
