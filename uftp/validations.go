package uftp

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// ErrValidation is wrapped by every schema-validation failure so callers
// can distinguish malformed messages from transport problems.
var ErrValidation = errors.New("uftp: validation")

var (
	reVersion   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	reDomain    = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*\.)+[a-z]{2,}$`)
	reUUID      = regexp.MustCompile(`^[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}$`)
	reTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{0,9})?([+-]\d{2}:\d{2}|Z)$`)
	reTimeZone  = regexp.MustCompile(`^(Africa|America|Australia|Europe|Pacific)/[a-zA-Z0-9_/]{3,}$`)
	reEntity    = regexp.MustCompile(`^(ea1\.[0-9]{4}-[0-9]{2}\..{1,244}:.{1,244}|ean\.[0-9]{12,34})$`)
	reCurrency  = regexp.MustCompile(`^[A-Z]{3}$`)
	reEAN       = regexp.MustCompile(`^[Ee][0-9]{16}$`)
)

// reEntityAddress is the pattern for congestion points and connection
// entity addresses (USEF EA1 format or an EAN).
var reEntityAddress = reEntity

func requiredError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

func match(field, value string, re *regexp.Regexp) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if !re.MatchString(value) {
		return fmt.Errorf("%w: %s %q does not match %s", ErrValidation, field, value, re)
	}
	return nil
}

func matchOptional(field, value string, re *regexp.Regexp) error {
	if value == "" {
		return nil
	}
	return match(field, value, re)
}

// ValidateDecimal coerces value to a decimal with exactly digits
// fraction digits. Accepted inputs are decimal.Decimal, numeric strings
// and the built-in integer and float types; anything else is rejected.
func ValidateDecimal(field string, value any, digits int32) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a decimal", ErrValidation, field, v)
		}
		d = parsed
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case float64:
		d = decimal.NewFromFloat(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %s has non-numeric type %T", ErrValidation, field, value)
	}
	return d.Round(digits), nil
}

// ValidateList checks the minimum-occurrence constraint of a repeated
// schema element.
func ValidateList[T any](field string, items []T, min int) error {
	if len(items) < min {
		return fmt.Errorf("%w: %s needs at least %d element(s), got %d", ErrValidation, field, min, len(items))
	}
	return nil
}

// Price is a monetary amount carrying exactly four fraction digits on
// the wire, as the UFTP schema prescribes for prices and penalties.
type Price struct {
	decimal.Decimal
}

// NewPrice quantises d to four fraction digits.
func NewPrice(d decimal.Decimal) Price { return Price{d.Round(4)} }

// PriceFromString parses a numeric string into a Price.
func PriceFromString(s string) (Price, error) {
	d, err := ValidateDecimal("Price", s, 4)
	if err != nil {
		return Price{}, err
	}
	return Price{d}, nil
}

func (p Price) String() string { return p.StringFixed(4) }

// MarshalXMLAttr implements xml.MarshalerAttr.
func (p Price) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: p.String()}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (p *Price) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := PriceFromString(attr.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := PriceFromString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ActivationFactor is the portion of an offer option that may be
// activated, between 0.01 and 1.00 inclusive, carried with two fraction
// digits on the wire.
type ActivationFactor struct {
	decimal.Decimal
}

// FullActivation is the default activation factor of 1.00.
func FullActivation() ActivationFactor { return ActivationFactor{decimal.NewFromInt(1).Round(2)} }

// NewActivationFactor quantises d to two fraction digits.
func NewActivationFactor(d decimal.Decimal) ActivationFactor { return ActivationFactor{d.Round(2)} }

// IsZero reports whether the factor is unset.
func (a ActivationFactor) IsZero() bool { return a.Decimal.IsZero() }

// Validate checks the 0.01..1.00 bounds.
func (a ActivationFactor) Validate(field string) error {
	min := decimal.New(1, -2)
	max := decimal.NewFromInt(1)
	if a.LessThan(min) || a.GreaterThan(max) {
		return fmt.Errorf("%w: %s must be between 0.01 and 1.00, got %s", ErrValidation, field, a.String())
	}
	return nil
}

func (a ActivationFactor) String() string { return a.StringFixed(2) }

// MarshalXMLAttr implements xml.MarshalerAttr.
func (a ActivationFactor) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: a.String()}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (a *ActivationFactor) UnmarshalXMLAttr(attr xml.Attr) error {
	d, err := ValidateDecimal(attr.Name.Local, attr.Value, 2)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a ActivationFactor) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// UnmarshalJSON implements json.Unmarshaler.
func (a *ActivationFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := ValidateDecimal("ActivationFactor", s, 2)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}
