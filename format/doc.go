// Package format is a printf-style format engine that renders typed host
// arguments the way the host formatter does.
//
// A format string is parsed once into a Spec of literal runs and directives
// of the form %[index$][flags][width][.precision]conversion:
//
//	flags        - left-justify, 0 zero-pad, + force sign, , group digits
//	conversions  s S d x X f e E b B c % n
//
// Rendering follows host rules rather than Go's fmt: %f and %e round half up
// on the shortest decimal form of the value, exponents carry a sign and at
// least two digits, hex output of a negative value is the two's complement
// of the argument's own width, and null renders as "null" (or false for %b).
//
// Arbitrary-precision integers and decimals travel as BigInteger and
// BigDecimal text arguments. Only the string conversions accept them, so
// their digits are reproduced exactly.
package format
