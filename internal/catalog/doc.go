// Package catalog persists imported Booth items and their package state in
// SQLite.
//
// Items are keyed by their Booth item ID. The store records the asset folder
// and storefront metadata captured at import time, and implements
// vpm.Recorder so the packaging coordinator can stamp package identity,
// version, and the last packaging time back onto each row. Busy database
// errors are retried with a short backoff so concurrent CLI invocations do not
// fail spuriously.
package catalog
