package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const maxNameLength = 255

var attributeKinds = map[string]bool{
	"dropdown": true,
	"date":     true,
	"checkbox": true,
	"input":    true,
}

var categoryLists = map[string]bool{
	"CF": true,
	"WC": true,
}

func requireText(v *ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, "This field may not be blank.")
	case utf8.RuneCountInString(value) > maxNameLength:
		v.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}
}

// normalizeAttributes accepts a JSON object and defaults to {}.
func normalizeAttributes(v *ValidationError, raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		v.Add("attributes", "Value must be a JSON object.")
		return nil
	}
	return raw
}

func validatePrices(v *ValidationError, price, received decimal.Decimal) {
	if price.IsNegative() {
		v.Add("price", "Price cannot be negative.")
	}
	if received.IsNegative() {
		v.Add("receive_price", "Receive price cannot be negative.")
	}
	if received.GreaterThan(price) {
		v.Add("receive_price", "Received price cannot be greater than the total price.")
	}
}

func invalidPK(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
