package common

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// JSON encodes response bodies. It mirrors encoding/json, including sorted map
// keys, so bodies are byte-stable.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// bodyJSON decodes request bodies. Numbers are kept as json.Number so prices
// and quantities reach the store without float rounding.
var bodyJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// DecodeBody unmarshals a JSON request body into v.
func DecodeBody(body string, v interface{}) error {
	if strings.TrimSpace(body) == "" {
		return errEmptyBody
	}
	return bodyJSON.UnmarshalFromString(body, v)
}
