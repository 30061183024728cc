package httpx

import (
	"net/url"
	"strconv"
)

// Params builds query strings for API requests. Unset values are omitted
// entirely rather than serialized as empty or "undefined", and booleans are
// serialized as the literal strings "true"/"false".
type Params struct {
	values url.Values
}

// NewParams returns an empty parameter set.
func NewParams() Params {
	return Params{values: url.Values{}}
}

// Str adds a string parameter, omitting empty values.
func (p Params) Str(key, val string) Params {
	if val != "" {
		p.values.Set(key, val)
	}
	return p
}

// Int adds an integer parameter, omitting zero values.
func (p Params) Int(key string, val int) Params {
	if val != 0 {
		p.values.Set(key, strconv.Itoa(val))
	}
	return p
}

// OptInt adds an integer parameter when set, omitting nil. Unlike Int, a
// pointed-to zero is sent, so callers can express offset=0 explicitly.
func (p Params) OptInt(key string, val *int) Params {
	if val != nil {
		p.values.Set(key, strconv.Itoa(*val))
	}
	return p
}

// Bool adds a boolean parameter as "true" or "false".
func (p Params) Bool(key string, val bool) Params {
	p.values.Set(key, strconv.FormatBool(val))
	return p
}

// OptBool adds a boolean parameter when set, omitting nil.
func (p Params) OptBool(key string, val *bool) Params {
	if val != nil {
		p.values.Set(key, strconv.FormatBool(*val))
	}
	return p
}

// Values returns the underlying url.Values. A nil receiver-safe empty set is
// returned when no parameters were added.
func (p Params) Values() url.Values {
	if p.values == nil {
		return url.Values{}
	}
	return p.values
}

// Encode renders the parameters in canonical (key-sorted) form.
func (p Params) Encode() string {
	return p.Values().Encode()
}
