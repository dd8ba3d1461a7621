package bitcore

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be quantized into
// atoms, such as NaN or an infinity.
var ErrInvalidAmount = errors.New("invalid amount")

// Term is the second argument of [New] and [Unit.To]: either a
// denomination [Code] or a fiat exchange [Rate].
// The two arms are resolved by an explicit type switch; the rate arm
// pre-divides the amount by the rate and re-enters through the base code.
type Term interface {
	term()
}

// Unit type represents an amount of currency.
// A Unit stores a single signed integer, the amount counted in atoms;
// every other representation is derived from that integer and the
// denomination table.
// Its zero value corresponds to 0 atoms.
// Unit is immutable after construction and is designed to be safe for
// concurrent use by multiple goroutines.
type Unit struct {
	atoms int64
}

// New returns a Unit worth the given amount expressed in the given term.
//
// If term is a [Code], the amount is an amount of that denomination and is
// quantized into atoms with rounding half away from zero. This is the only
// point where precision is lost.
//
// If term is a [Rate], the amount is a fiat amount: it is divided by the
// rate and ingested as whole coins. Fiat enters here and only here; the
// constructed Unit stores atoms, never fiat.
//
// New returns an error if:
//   - the code is not in the denomination table ([ErrUnknownCode]);
//   - the rate is not positive or is not finite ([ErrInvalidRate]);
//   - the amount is NaN or an infinity ([ErrInvalidAmount]).
func New(amount float64, term Term) (Unit, error) {
	switch t := term.(type) {
	case Code:
		d, err := toDecimal(amount)
		if err != nil {
			return Unit{}, err
		}
		return fromDecimal(d, t)
	case Rate:
		if err := t.validate(); err != nil {
			return Unit{}, err
		}
		d, err := toDecimal(amount)
		if err != nil {
			return Unit{}, err
		}
		return fromDecimal(d.Div(t.decimal()), HC)
	default:
		return Unit{}, fmt.Errorf("term must be a %T or a %T, got %T", HC, Rate(0), term)
	}
}

// MustNew is like [New] but panics if the Unit cannot be constructed.
// It simplifies safe initialization of global variables holding units.
func MustNew(amount float64, term Term) Unit {
	u, err := New(amount, term)
	if err != nil {
		panic(fmt.Sprintf("New(%v, %v) failed: %v", amount, term, err))
	}
	return u
}

// toDecimal converts a float amount to a decimal, rejecting values that
// have no decimal representation.
func toDecimal(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return decimal.NewFromFloat(amount), nil
}

// fromDecimal quantizes an amount of the given denomination into atoms.
func fromDecimal(d decimal.Decimal, c Code) (Unit, error) {
	den, err := lookup(c)
	if err != nil {
		return Unit{}, err
	}
	atoms := d.Mul(decimal.NewFromInt(den.atomsPer)).Round(0).IntPart()
	return Unit{atoms: atoms}, nil
}

// FromHC returns a Unit worth the given amount of whole coins.
func FromHC(hc float64) (Unit, error) {
	return New(hc, HC)
}

// FromMilliHC returns a Unit worth the given amount of milli-coins.
func FromMilliHC(mhc float64) (Unit, error) {
	return New(mhc, MilliHC)
}

// FromBits returns a Unit worth the given amount of bits.
func FromBits(bits float64) (Unit, error) {
	return New(bits, Bits)
}

// FromMicroHC is an alias of [FromBits]; a bit is one micro-coin.
func FromMicroHC(micro float64) (Unit, error) {
	return FromBits(micro)
}

// FromAtoms returns a Unit holding exactly the given number of atoms.
// Atom counts are already integers, so the conversion is lossless and
// cannot fail. See also method [Unit.ToAtoms].
func FromAtoms(atoms int64) Unit {
	return Unit{atoms: atoms}
}

// Object is the plain keyed form of a Unit.
// Units always externalize in their base-unit representation, regardless
// of the denomination supplied at construction.
type Object struct {
	Amount float64 `json:"amount"`
	Code   Code    `json:"code"`
}

// FromObject returns a Unit worth obj.Amount of the denomination obj.Code.
// See also method [Unit.Object].
func FromObject(obj Object) (Unit, error) {
	return New(obj.Amount, obj.Code)
}

// Object returns the keyed form of the Unit: its base-unit value and the
// base-unit code. The amount carries the base denomination's precision of
// eight decimal digits, so sub-atomic detail cannot survive a round trip.
func (u Unit) Object() Object {
	return Object{Amount: u.ToHC(), Code: HC}
}

// To projects the Unit into the given term.
//
// If term is a [Code], To returns the Unit's value in that denomination,
// rounded half away from zero to the denomination's precision. The
// projection is read-only: the stored atom count is never altered, so
// repeated conversion does not accumulate rounding error. Projecting into
// [Atoms] is always exact.
//
// If term is a [Rate], To returns the fiat value of the Unit at that rate,
// rounded to two decimal digits.
//
// To returns an error if the code is not in the denomination table
// ([ErrUnknownCode]) or the rate is not positive ([ErrInvalidRate]).
func (u Unit) To(term Term) (float64, error) {
	switch t := term.(type) {
	case Code:
		den, err := lookup(t)
		if err != nil {
			return 0, err
		}
		return u.project(den).InexactFloat64(), nil
	case Rate:
		if err := t.validate(); err != nil {
			return 0, err
		}
		return u.fiat(t), nil
	default:
		return 0, fmt.Errorf("term must be a %T or a %T, got %T", HC, Rate(0), term)
	}
}

// project derives the Unit's value in the given denomination, rounded to
// the denomination's precision.
func (u Unit) project(den denomination) decimal.Decimal {
	return decimal.New(u.atoms, 0).Div(decimal.NewFromInt(den.atomsPer)).Round(den.prec)
}

// ToHC returns the Unit's value in whole coins, rounded to eight decimal
// digits.
func (u Unit) ToHC() float64 {
	return u.project(denominations[HC]).InexactFloat64()
}

// ToMilliHC returns the Unit's value in milli-coins, rounded to five
// decimal digits.
func (u Unit) ToMilliHC() float64 {
	return u.project(denominations[MilliHC]).InexactFloat64()
}

// ToBits returns the Unit's value in bits, rounded to two decimal digits.
func (u Unit) ToBits() float64 {
	return u.project(denominations[Bits]).InexactFloat64()
}

// ToMicroHC is an alias of [Unit.ToBits]; a bit is one micro-coin.
func (u Unit) ToMicroHC() float64 {
	return u.ToBits()
}

// ToDBits returns the Unit's value in decimal bits, rounded to two decimal
// digits.
func (u Unit) ToDBits() float64 {
	return u.project(denominations[DBits]).InexactFloat64()
}

// ToAtoms returns the stored atom count.
// The atomic projection is exact for any constructed Unit.
func (u Unit) ToAtoms() int64 {
	return u.atoms
}

// Add returns u + v.
// The operation is exact: both operands and the sum are integer atom
// counts.
func (u Unit) Add(v Unit) Unit {
	return Unit{atoms: u.atoms + v.atoms}
}

// Sub returns u - v.
func (u Unit) Sub(v Unit) Unit {
	return Unit{atoms: u.atoms - v.atoms}
}

// Neg returns the Unit with its sign inverted.
func (u Unit) Neg() Unit {
	return Unit{atoms: -u.atoms}
}

// Abs returns the absolute value of the Unit.
func (u Unit) Abs() Unit {
	if u.atoms < 0 {
		return u.Neg()
	}
	return u
}

// Cmp compares two units and returns:
//
//	-1 if u < v
//	 0 if u == v
//	+1 if u > v
func (u Unit) Cmp(v Unit) int {
	switch {
	case u.atoms < v.atoms:
		return -1
	case u.atoms > v.atoms:
		return 1
	}
	return 0
}

// IsZero returns true if the Unit is worth zero atoms.
func (u Unit) IsZero() bool {
	return u.atoms == 0
}

// IsPos returns true if the Unit is worth more than zero atoms.
func (u Unit) IsPos() bool {
	return u.atoms > 0
}

// IsNeg returns true if the Unit is worth less than zero atoms.
func (u Unit) IsNeg() bool {
	return u.atoms < 0
}

// String method implements the [fmt.Stringer] interface and returns the
// atom count followed by the atomic unit's code, e.g. "150000000 atoms".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (u Unit) String() string {
	return strconv.FormatInt(u.atoms, 10) + " " + string(Atoms)
}

// Inspect returns a debug rendering of the Unit,
// e.g. "<Unit: 150000000 atoms>".
func (u Unit) Inspect() string {
	return "<Unit: " + u.String() + ">"
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the base-unit keyed form.
// See also method [Unit.Object].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Object())
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The input must be a JSON object with "amount" and "code" fields.
// See also constructor [FromObject].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (u *Unit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Unit{}, err)
	}
	v, err := FromObject(obj)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Unit{}, err)
	}
	*u = v
	return nil
}

// Scan implements the [sql.Scanner] interface.
// The database value is the atom count.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (u *Unit) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case int64:
		*u = Unit{atoms: value}
	case []byte:
		*u, err = parseAtoms(string(value))
	case string:
		*u, err = parseAtoms(value)
	case nil:
		err = fmt.Errorf("%T does not support null values", Unit{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Unit{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The database value is the atom count.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (u Unit) Value() (driver.Value, error) {
	return u.atoms, nil
}

func parseAtoms(s string) (Unit, error) {
	atoms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Unit{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Unit{atoms: atoms}, nil
}
