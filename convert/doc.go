// Package convert provides the reference binary value converters: unsigned
// and two's complement integers, booleans, raw bytes, UTF-8 strings and
// labelled enums.
package convert
