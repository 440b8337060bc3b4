// Package format defines the BRIG binary module: its four sections, the
// record kinds stored in them, and the enumerations carried by record fields.
//
// A BRIG module is a set of four independent little-endian byte sections:
//   - Directives: declarations (functions, symbols, labels, version, ...)
//   - Code: instructions, each with up to five operand offsets
//   - Operands: registers, immediates, addresses and references
//   - Strings: NUL-terminated names, deduplicated by the producer
//
// Every section starts with eight zero bytes, so offset 0 never names a real
// record and can be used as the "absent" sentinel by all reference fields.
//
// Every record starts with a {size u16, kind u16} prefix. Records are variable
// length and are always traversed by their declared size.
//
// The types in this package are a decoded, read-only data model. Decoding and
// bounds checking live in package section; verification lives in package
// verify.
package format
