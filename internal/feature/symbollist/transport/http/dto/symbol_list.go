// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem is one entry of the GET /symbols response.
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
