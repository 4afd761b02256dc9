// Package bits holds leaf helpers shared by the codec implementation:
// zigzag mappings for signed varints, overflow-checked arithmetic, and
// UTF-8 lead-byte classification. It has no dependencies and no state.
package bits
