package validation

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Decimal accepts a JSON number or numeric string. Anything else fails decoding with a
// *json.UnmarshalTypeError, so Parse can report the field by name.
type Decimal struct {
	decimal.Decimal
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		return &json.UnmarshalTypeError{
			Value: rawKind(data),
			Type:  reflect.TypeOf(float64(0)),
		}
	}
	return nil
}

// rawKind names the JSON type of a raw value the way error messages describe it.
func rawKind(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "undefined"
	}
	switch data[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
