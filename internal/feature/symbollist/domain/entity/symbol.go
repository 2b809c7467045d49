// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol is the public view of a registered stock symbol.
// The data locator stays inside the dataset feature.
type Symbol struct {
	Code    string
	Name    string
	SortKey int
}
