// Package document ties one buffer to the cursor set, selection set,
// and command executor that share its lifetime, and tracks the set of
// open documents for an editor instance.
package document
