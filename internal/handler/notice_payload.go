package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeNotice reads a notice from any syntactically valid JSON document.
// Non-object documents yield an empty notice. Field values are taken when
// truthy: non-empty strings, non-zero numbers, true, arrays and objects.
func decodeNotice(raw []byte) (quote.Notice, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return quote.Notice{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return quote.Notice{}, errTrailingData
	}

	fields, ok := payload.(map[string]interface{})
	if !ok {
		return quote.Notice{}, nil
	}
	return quote.Notice{
		Email:      fieldText(fields["email"]),
		Pickup:     fieldText(fields["pickup"]),
		Delivery:   fieldText(fields["delivery"]),
		DistanceKm: json.Number(fieldText(fields["distanceKm"])),
		Duration:   fieldText(fields["duration"]),
		Estimate:   fieldText(fields["estimate"]),
	}, nil
}

// fieldText renders a decoded JSON value as text, or "" when it is falsy.
func fieldText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(out)
	}
}
