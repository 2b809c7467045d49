package entity

import (
	"fmt"
	"sort"
	"strings"

	"stock_sentiment/internal/feature/dataset/domain"
)

// Symbol is a registered stock ticker and the locator of its dataset.
type Symbol struct {
	Code    string // ticker, e.g. "MSFT"
	Name    string // display name
	Locator string // http(s) URL, file:// URL or local path of the CSV
}

// defaultSymbols is the fixed set of datasets the service knows about, in
// display order.
var defaultSymbols = []Symbol{
	{Code: "MSFT", Name: "Microsoft", Locator: "https://raw.githubusercontent.com/HAZCHEM234/My_data/main/UpdateMSFT__2024-06-30_data.csv"},
	{Code: "AAPL", Name: "Apple", Locator: "https://raw.githubusercontent.com/HAZCHEM234/My_data/main/UpdateAAPL__2024-06-29_data.csv"},
	{Code: "ADBE", Name: "Adobe", Locator: "https://raw.githubusercontent.com/HAZCHEM234/My_data/main/UpdateADBE__2024-07-02_data.csv"},
	{Code: "V", Name: "Visa", Locator: "https://raw.githubusercontent.com/HAZCHEM234/My_data/main/UpdateV__2024-07-02_data.csv"},
}

// DefaultSymbolCodes returns the codes of the built-in registry in display order.
func DefaultSymbolCodes() []string {
	out := make([]string, 0, len(defaultSymbols))
	for _, s := range defaultSymbols {
		out = append(out, s.Code)
	}
	return out
}

// SymbolRegistry maps symbol codes to dataset locators. It is immutable after
// construction and safe for concurrent use.
type SymbolRegistry struct {
	symbols []Symbol
	index   map[string]int
}

// NewSymbolRegistry builds the registry from the built-in symbols. overrides
// replaces the locator of known symbols; an override for a symbol outside the
// built-in set is rejected.
func NewSymbolRegistry(overrides map[string]string) (*SymbolRegistry, error) {
	r := &SymbolRegistry{
		symbols: make([]Symbol, len(defaultSymbols)),
		index:   make(map[string]int, len(defaultSymbols)),
	}
	copy(r.symbols, defaultSymbols)
	for i, s := range r.symbols {
		r.index[s.Code] = i
	}

	// iterate in a stable order so the first reported error is deterministic
	codes := make([]string, 0, len(overrides))
	for code := range overrides {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		locator := strings.TrimSpace(overrides[code])
		i, ok := r.index[strings.ToUpper(strings.TrimSpace(code))]
		if !ok {
			return nil, fmt.Errorf("locator override for %q: %w", code, domain.ErrUnknownSymbol)
		}
		if locator == "" {
			continue
		}
		r.symbols[i].Locator = locator
	}
	return r, nil
}

// Lookup returns the symbol registered under code. Codes are matched exactly.
func (r *SymbolRegistry) Lookup(code string) (Symbol, bool) {
	i, ok := r.index[code]
	if !ok {
		return Symbol{}, false
	}
	return r.symbols[i], true
}

// List returns a copy of the registered symbols in display order.
func (r *SymbolRegistry) List() []Symbol {
	out := make([]Symbol, len(r.symbols))
	copy(out, r.symbols)
	return out
}
