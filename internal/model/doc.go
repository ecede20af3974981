// Package model defines the record types produced by siteharvest.
//
// Records are immutable value types: they are created once during
// extraction and never mutated afterwards. Deduplication identity is
// documented on each type (URL for articles, full structural equality
// for resources within a page).
package model
