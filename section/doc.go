// Package section reads the records of a BRIG module with every access
// bounds checked.
//
// A View wraps one section. Cursor walks it by each record's declared size,
// and the Decode functions turn the record at an offset into a typed
// format value after checking that the header and the declared size stay
// inside the section and that the kind is known. References between
// records go through Directive and Operand, which add a kind check on top of
// decoding. No function in this package panics on malformed input.
//
// ControlBlock iterates a function body by label boundaries.
package section
