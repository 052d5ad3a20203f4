/*
Package treeseq implements a typed table layer for tree sequences: columnar,
append-only tables of nodes, edges, sites, mutations, individuals,
populations, migrations and provenances that together describe a genealogical
history.

We implement:

1. Owned tables, self-contained mutable tables that own their column buffers
and support row insertion and clearing.

2. Borrowed views, cheap read-only handles over the columns of an owned table
or a table collection. Views and owned tables share one row-access and
iteration contract.

3. A table collection, the aggregate of all per-kind tables plus top-level
metadata and the edge index pair, with clearing, structural equality and
integrity checking.

4. Option flags, one fixed-width bit set per governed operation
(simplification, clearing, equality, sorting, tree iteration, output,
tree-sequence construction, integrity checking), plus the extensible
per-row node and individual flags.

# Technical Details

**Row identifiers.**
Rows are addressed by dense, zero-based, strongly typed int32 identifiers
assigned in insertion order. Identifiers are never reused: tables only grow
or are cleared wholesale. Access outside [0, NumRows) yields an absent
result, never an error. -1 is the null sentinel for optional references.

**Metadata.**
Every table except provenances carries an optional per-row metadata blob.
A row with no metadata is distinct from a row with an empty blob. Blobs are
decoded on demand through a pluggable MetadataCodec; the default codec is
msgpack.

**Columns.**
Fixed-width payloads live in plain slices; variable-length payloads
(metadata, allele states, individual locations and parents) live in ragged
columns backed by a single buffer plus an offsets array.

**Persistence.**
Dump writes a table collection into a Bolt file, one bucket per table, one
msgpack-encoded value per column. Load reads it back. No format of our own
is defined beyond this bucket layout.
*/
package treeseq
