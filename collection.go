package treeseq

import (
	"bytes"
	"slices"
	"sort"
)

// TableCollection is the aggregate of all per-kind tables describing one
// genealogical history, plus the sequence length, top-level metadata and
// the edge index pair used by tree iteration.
//
// A collection is the only writer of its tables. Borrowed views handed out
// by the accessors stay valid while the collection lives, but reading
// through a view while mutating the collection through another handle is
// the caller's responsibility to avoid.
type TableCollection struct {
	sequenceLength float64

	nodes       NodeTable
	edges       EdgeTable
	sites       SiteTable
	mutations   MutationTable
	individuals IndividualTable
	populations PopulationTable
	migrations  MigrationTable
	provenances ProvenanceTable

	metadata       []byte
	metadataSchema string

	indexes *edgeIndexes
}

// edgeIndexes is the pair of edge orderings tree iteration consumes:
// the order edges enter trees walking left to right along the genome, and
// the order they leave.
type edgeIndexes struct {
	insertion []EdgeID
	removal   []EdgeID
}

// NewTableCollection returns an empty collection over a genome of the given
// length.
func NewTableCollection(sequenceLength float64) *TableCollection {
	return &TableCollection{sequenceLength: sequenceLength}
}

// SequenceLength returns the length of the genome the tables describe.
func (tc *TableCollection) SequenceLength() float64 { return tc.sequenceLength }

// SetSequenceLength changes the genome length.
func (tc *TableCollection) SetSequenceLength(l float64) { tc.sequenceLength = l }

// Mutable access to the owned tables.

func (tc *TableCollection) Nodes() *NodeTable             { return &tc.nodes }
func (tc *TableCollection) Edges() *EdgeTable             { return &tc.edges }
func (tc *TableCollection) Sites() *SiteTable             { return &tc.sites }
func (tc *TableCollection) Mutations() *MutationTable     { return &tc.mutations }
func (tc *TableCollection) Individuals() *IndividualTable { return &tc.individuals }
func (tc *TableCollection) Populations() *PopulationTable { return &tc.populations }
func (tc *TableCollection) Migrations() *MigrationTable   { return &tc.migrations }
func (tc *TableCollection) Provenances() *ProvenanceTable { return &tc.provenances }

// RawMetadata returns the collection's top-level metadata blob.
func (tc *TableCollection) RawMetadata() []byte { return tc.metadata }

// SetRawMetadata sets the collection's top-level metadata blob.
func (tc *TableCollection) SetRawMetadata(b []byte) { tc.metadata = b }

// MetadataSchema returns the top-level metadata schema text.
func (tc *TableCollection) MetadataSchema() string { return tc.metadataSchema }

// SetMetadataSchema sets the top-level metadata schema text.
func (tc *TableCollection) SetMetadataSchema(s string) { tc.metadataSchema = s }

// Clear removes all rows from all tables and drops the edge indexes.
// The provenance table is kept unless ClearProvenance is set. Per the
// other option bits, metadata schemas and the top-level metadata are
// additionally reset.
func (tc *TableCollection) Clear(opts TableClearOptions) {
	tc.nodes.Clear(opts)
	tc.edges.Clear(opts)
	tc.sites.Clear(opts)
	tc.mutations.Clear(opts)
	tc.individuals.Clear(opts)
	tc.populations.Clear(opts)
	tc.migrations.Clear(opts)
	if opts.Contains(ClearProvenance) {
		tc.provenances.Clear(opts)
	}
	if opts.Contains(ClearTSMetadataAndSchema) {
		tc.metadata = nil
		tc.metadataSchema = ""
	}
	tc.DropIndex()
}

// Equals reports whether two collections hold structurally equal data,
// modulo the given options. Edge indexes are not part of the comparison.
func (tc *TableCollection) Equals(other *TableCollection, opts TableEqualityOptions) bool {
	if tc.sequenceLength != other.sequenceLength {
		return false
	}
	ignoreMeta := opts.Contains(CmpIgnoreMetadata)
	if !nodeColumnsEqual(&tc.nodes.cols, &other.nodes.cols, ignoreMeta) ||
		!edgeColumnsEqual(&tc.edges.cols, &other.edges.cols, ignoreMeta) ||
		!siteColumnsEqual(&tc.sites.cols, &other.sites.cols, ignoreMeta) ||
		!mutationColumnsEqual(&tc.mutations.cols, &other.mutations.cols, ignoreMeta) ||
		!individualColumnsEqual(&tc.individuals.cols, &other.individuals.cols, ignoreMeta) ||
		!populationColumnsEqual(&tc.populations.cols, &other.populations.cols, ignoreMeta) ||
		!migrationColumnsEqual(&tc.migrations.cols, &other.migrations.cols, ignoreMeta) {
		return false
	}
	if !opts.Contains(CmpIgnoreTSMetadata) {
		if !bytes.Equal(tc.metadata, other.metadata) || tc.metadataSchema != other.metadataSchema {
			return false
		}
	}
	if !opts.Contains(CmpIgnoreProvenance) {
		if !provenanceColumnsEqual(&tc.provenances.cols, &other.provenances.cols, opts.Contains(CmpIgnoreTimestamps)) {
			return false
		}
	}
	return true
}

func metaEqual(a, b *metadataColumn, ignoreMeta bool) bool {
	if ignoreMeta {
		return true
	}
	return a.equal(b)
}

func nodeColumnsEqual(a, b *nodeColumns, ignoreMeta bool) bool {
	return slices.Equal(a.flags, b.flags) &&
		slices.Equal(a.time, b.time) &&
		slices.Equal(a.population, b.population) &&
		slices.Equal(a.individual, b.individual) &&
		metaEqual(&a.meta, &b.meta, ignoreMeta)
}

func edgeColumnsEqual(a, b *edgeColumns, ignoreMeta bool) bool {
	return slices.Equal(a.left, b.left) &&
		slices.Equal(a.right, b.right) &&
		slices.Equal(a.parent, b.parent) &&
		slices.Equal(a.child, b.child) &&
		metaEqual(&a.meta, &b.meta, ignoreMeta)
}

func siteColumnsEqual(a, b *siteColumns, ignoreMeta bool) bool {
	return slices.Equal(a.position, b.position) &&
		a.ancestral.equal(&b.ancestral) &&
		metaEqual(&a.meta, &b.meta, ignoreMeta)
}

func mutationColumnsEqual(a, b *mutationColumns, ignoreMeta bool) bool {
	if !slices.Equal(a.site, b.site) ||
		!slices.Equal(a.node, b.node) ||
		!slices.Equal(a.parent, b.parent) ||
		!a.derived.equal(&b.derived) ||
		!metaEqual(&a.meta, &b.meta, ignoreMeta) {
		return false
	}
	// Unknown times are NaN, which slices.Equal would treat as unequal.
	if len(a.time) != len(b.time) {
		return false
	}
	for i, at := range a.time {
		if at != b.time[i] && !(at != at && b.time[i] != b.time[i]) {
			return false
		}
	}
	return true
}

func individualColumnsEqual(a, b *individualColumns, ignoreMeta bool) bool {
	return slices.Equal(a.flags, b.flags) &&
		a.location.equal(&b.location) &&
		a.parents.equal(&b.parents) &&
		metaEqual(&a.meta, &b.meta, ignoreMeta)
}

func populationColumnsEqual(a, b *populationColumns, ignoreMeta bool) bool {
	if ignoreMeta {
		return a.numRows() == b.numRows()
	}
	return a.meta.equal(&b.meta)
}

func migrationColumnsEqual(a, b *migrationColumns, ignoreMeta bool) bool {
	return slices.Equal(a.left, b.left) &&
		slices.Equal(a.right, b.right) &&
		slices.Equal(a.node, b.node) &&
		slices.Equal(a.source, b.source) &&
		slices.Equal(a.dest, b.dest) &&
		slices.Equal(a.time, b.time) &&
		metaEqual(&a.meta, &b.meta, ignoreMeta)
}

func provenanceColumnsEqual(a, b *provenanceColumns, ignoreTimestamps bool) bool {
	if !a.record.equal(&b.record) {
		return false
	}
	return ignoreTimestamps || a.timestamp.equal(&b.timestamp)
}

// HasIndex reports whether the edge indexes are present.
func (tc *TableCollection) HasIndex() bool { return tc.indexes != nil }

// DropIndex discards the edge indexes, if any.
func (tc *TableCollection) DropIndex() { tc.indexes = nil }

// BuildIndex computes the edge insertion and removal orders. It fails when
// an edge references a parent outside the node table, since the orders
// depend on parent birth times. Mutating the edge or node tables afterwards
// invalidates the indexes; rebuild before relying on them.
func (tc *TableCollection) BuildIndex() error {
	edges := &tc.edges.cols
	nrows := edges.numRows()
	nnodes := tc.nodes.cols.numRows()
	for i := int32(0); i < nrows; i++ {
		if !inRange(edges.parent[i], nnodes) {
			return integrityErrf("edges", i, "parent %d out of range, cannot index", edges.parent[i])
		}
	}
	times := tc.nodes.cols.time

	insertion := make([]EdgeID, nrows)
	removal := make([]EdgeID, nrows)
	for i := range insertion {
		insertion[i] = EdgeID(i)
		removal[i] = EdgeID(i)
	}
	sort.SliceStable(insertion, func(i, j int) bool {
		a, b := insertion[i], insertion[j]
		if edges.left[a] != edges.left[b] {
			return edges.left[a] < edges.left[b]
		}
		if ta, tb := times[edges.parent[a]], times[edges.parent[b]]; ta != tb {
			return ta < tb
		}
		if edges.parent[a] != edges.parent[b] {
			return edges.parent[a] < edges.parent[b]
		}
		return edges.child[a] < edges.child[b]
	})
	sort.SliceStable(removal, func(i, j int) bool {
		a, b := removal[i], removal[j]
		if edges.right[a] != edges.right[b] {
			return edges.right[a] < edges.right[b]
		}
		if ta, tb := times[edges.parent[a]], times[edges.parent[b]]; ta != tb {
			return ta > tb
		}
		if edges.parent[a] != edges.parent[b] {
			return edges.parent[a] > edges.parent[b]
		}
		return edges.child[a] > edges.child[b]
	})
	tc.indexes = &edgeIndexes{insertion: insertion, removal: removal}
	return nil
}
