package bitcore

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Code type represents a denomination of the coin.
// Its value is the denomination's string code, so a Code can be used
// directly wherever the external representation is expected.
//
// Code is one of the two [Term] implementations accepted by [New] and
// [Unit.To]; the other is [Rate].
type Code string

// These constants name every entry of the denomination table.
const (
	HC      Code = "HC"    // base unit, one whole coin
	MilliHC Code = "mHC"   // one thousandth of a coin
	Bits    Code = "bits"  // one millionth of a coin
	DBits   Code = "dbits" // decimal bits, same granularity as bits
	Atoms   Code = "atoms" // atomic unit, indivisible
)

// ErrUnknownCode is returned when a code is not present in the
// denomination table.
var ErrUnknownCode = errors.New("unknown denomination code")

// denomination is one entry of the denomination table.
type denomination struct {
	atomsPer int64 // atoms in one unit of the denomination
	prec     int32 // decimal digits kept when projecting into the denomination
}

// denominations maps every supported code to its table entry.
// The table is initialized once and never mutated, so it is safe for
// concurrent readers.
var denominations = map[Code]denomination{
	HC:      {atomsPer: 100_000_000, prec: 8},
	MilliHC: {atomsPer: 100_000, prec: 5},
	Bits:    {atomsPer: 100, prec: 2},
	DBits:   {atomsPer: 100, prec: 2},
	Atoms:   {atomsPer: 1, prec: 0},
}

// Codes returns every supported denomination code, ordered from the base
// unit down to the atomic unit.
func Codes() []Code {
	return []Code{HC, MilliHC, Bits, DBits, Atoms}
}

// lookup resolves a code to its table entry.
func lookup(c Code) (denomination, error) {
	d, ok := denominations[c]
	if !ok {
		return denomination{}, fmt.Errorf("%w: %q", ErrUnknownCode, string(c))
	}
	return d, nil
}

// ParseCode converts a string to a denomination code.
// ParseCode returns [ErrUnknownCode] if the string is not one of the codes
// listed by [Codes].
func ParseCode(s string) (Code, error) {
	c := Code(s)
	if _, ok := denominations[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}
	return c, nil
}

// MustParseCode is like [ParseCode] but panics if the string cannot be
// parsed. It simplifies safe initialization of global variables holding
// denomination codes.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(fmt.Sprintf("ParseCode(%q) failed: %v", s, err))
	}
	return c
}

// term marks Code as a [Term].
func (Code) term() {}

// String method implements the [fmt.Stringer] interface and returns
// the code as a string.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Code) String() string {
	return string(c)
}

// AtomsPerUnit returns the number of atoms in one unit of the denomination.
// AtomsPerUnit returns [ErrUnknownCode] if the code is not in the
// denomination table.
func (c Code) AtomsPerUnit() (int64, error) {
	d, err := lookup(c)
	if err != nil {
		return 0, err
	}
	return d.atomsPer, nil
}

// Precision returns the number of decimal digits a value projected into
// the denomination is rounded to.
// Precision returns [ErrUnknownCode] if the code is not in the
// denomination table.
func (c Code) Precision() (int, error) {
	d, err := lookup(c)
	if err != nil {
		return 0, err
	}
	return int(d.prec), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseCode].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Code) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*c, err = ParseCode(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", HC, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the quoted code string.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Code) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, len(c)+2)
	text = append(text, '"')
	text = append(text, c...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCode].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Code) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCode(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", HC, err)
	}
	return nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always returns the code string.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (c *Code) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*c, err = ParseCode(value)
	case []byte:
		*c, err = ParseCode(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", HC, NullCode{}, HC)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, HC, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (c Code) Value() (driver.Value, error) {
	return string(c), nil
}

// NullCode represents a denomination code that can be null.
// Its zero value is null.
// NullCode is not thread-safe.
type NullCode struct {
	Code  Code
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Code.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullCode) Scan(value any) error {
	if value == nil {
		n.Code = ""
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Code.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Code.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullCode) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Code.Value()
}
