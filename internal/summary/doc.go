// Package summary computes corpus statistics over report rows: how many
// publications declare each accessibility feature, which languages and
// layouts occur, and how images are distributed over the size buckets.
package summary
