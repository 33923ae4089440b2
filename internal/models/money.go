package models

import "github.com/shopspring/decimal"

// Money is rendered as a JSON number, not a quoted string. Decoding accepts
// either form.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
