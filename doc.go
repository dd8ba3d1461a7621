/*
Package bitcore implements a currency amount convertible among the fixed
denominations of the coin, from the whole coin down to the atomic unit.

# Representation

The package consists of two main types: Unit and Code.
A Unit represents an amount of currency and stores a single signed integer,
the amount counted in atoms.
Every other representation of a Unit, such as its value in whole coins or
in bits, is derived on demand from that integer and the denomination table;
none of them is stored.
A Code names one entry of the denomination table, which defines the number
of atoms in one unit of the denomination and the number of decimal digits
kept when a Unit is projected into it.

# Denominations

The supported denominations are:

	| Code  | Atoms per unit | Precision |
	| ----- | -------------- | --------- |
	| HC    | 100000000      | 8         |
	| mHC   | 100000         | 5         |
	| bits  | 100            | 2         |
	| dbits | 100            | 2         |
	| atoms | 1              | 0         |

The table is initialized once and never mutated.

# Rounding

An amount is quantized into atoms exactly once, at construction, using
rounding half away from zero.
Projections into a denomination round to the denomination's precision for
display, but never write the rounded value back: repeated conversion
through a coarse denomination does not accumulate rounding error.
The atomic projection is always exact.

# Fiat conversion

A fiat amount enters through an exchange rate, expressed in fiat units per
whole coin, and is converted to a whole-coin amount before quantization.
Units never store fiat values.
The fiat projection rounds to two decimal digits.

# Errors

Constructors and projections return [ErrUnknownCode] for a code outside
the denomination table, [ErrInvalidRate] for a non-positive exchange rate,
and [ErrInvalidAmount] for amounts that cannot be quantized, such as NaN.
All errors are returned synchronously at the offending call; a failed
construction yields no Unit.
*/
package bitcore
