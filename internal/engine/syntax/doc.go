// Package syntax defines the surface between the editing engine and an
// external highlighting collaborator: read-only snapshots in, tagged
// ranges out, with edit descriptors delivered after every mutation for
// incremental re-parsing. A small keyword highlighter is included so
// the surface has a working implementation in-tree.
package syntax
