package engine

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var ErrInvalidAddresses = errors.New("address listing is not a JSON array")

// Addresses is the engine's receiving address listing, kept as the JSON
// array it was reported as.
type Addresses struct {
	raw []byte
}

// ParseAddresses accepts a JSON array. Empty input is an empty listing.
func ParseAddresses(raw []byte) (Addresses, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Addresses{raw: []byte("[]")}, nil
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsArray() {
		return Addresses{}, ErrInvalidAddresses
	}
	return Addresses{raw: append([]byte(nil), raw...)}, nil
}

// Raw returns the JSON array
func (a Addresses) Raw() []byte {
	if len(a.raw) == 0 {
		return []byte("[]")
	}
	return a.raw
}

// Len returns the number of listed addresses
func (a Addresses) Len() int {
	return len(gjson.ParseBytes(a.Raw()).Array())
}

// Encoded returns the encoded address strings. Entries may be bare strings
// or objects carrying an "encoded_address" or "address" field.
func (a Addresses) Encoded() []string {
	var out []string
	for _, entry := range gjson.ParseBytes(a.Raw()).Array() {
		switch {
		case entry.Type == gjson.String:
			out = append(out, entry.String())
		case entry.Get("encoded_address").Exists():
			out = append(out, entry.Get("encoded_address").String())
		case entry.Get("address").Exists():
			out = append(out, entry.Get("address").String())
		}
	}
	return out
}

// Pretty renders the listing indented by two spaces
func (a Addresses) Pretty() string {
	out := pretty.PrettyOptions(a.Raw(), &pretty.Options{
		Width:  80,
		Prefix: "",
		Indent: "  ",
	})
	return string(bytes.TrimRight(out, "\n"))
}
