// Package textutil normalizes free-form item text into identifier-safe
// segments.
package textutil
