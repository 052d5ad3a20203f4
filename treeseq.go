package treeseq

import "github.com/RoaringBitmap/roaring/v2"

// TreeSequence is a validated, indexed table collection ready for tree
// iteration and the other genealogy algorithms. Construction checks
// integrity and snapshots the sample set; the collection must not be
// mutated for as long as the tree sequence is in use.
type TreeSequence struct {
	tables  *TableCollection
	samples roaring.Bitmap
}

// NewTreeSequence validates tc and wraps it. Construction requires the edge
// indexes: pass TSBuildIndexes to build them when absent, otherwise their
// absence is an error. The full CheckTrees integrity suite runs in either
// case.
func NewTreeSequence(tc *TableCollection, flags TreeSequenceFlags) (*TreeSequence, error) {
	if !tc.HasIndex() {
		if !flags.Contains(TSBuildIndexes) {
			return nil, integrityErrf("indexes", -1, "edge indexes not built")
		}
		if err := tc.BuildIndex(); err != nil {
			return nil, err
		}
	}
	if err := tc.CheckIntegrity(CheckTrees); err != nil {
		return nil, err
	}
	ts := &TreeSequence{tables: tc}
	for i, f := range tc.nodes.cols.flags {
		if f.IsSample() {
			ts.samples.Add(uint32(i))
		}
	}
	return ts, nil
}

// SequenceLength returns the length of the genome.
func (ts *TreeSequence) SequenceLength() float64 { return ts.tables.sequenceLength }

// NumSamples returns the number of sample nodes.
func (ts *TreeSequence) NumSamples() int { return int(ts.samples.GetCardinality()) }

// Samples returns the ids of all sample nodes in ascending order.
func (ts *TreeSequence) Samples() []NodeID {
	ids := make([]NodeID, 0, ts.samples.GetCardinality())
	it := ts.samples.Iterator()
	for it.HasNext() {
		ids = append(ids, NodeID(it.Next()))
	}
	return ids
}

// IsSample reports whether node id was a sample at construction time.
func (ts *TreeSequence) IsSample(id NodeID) bool {
	return id >= 0 && ts.samples.Contains(uint32(id))
}

// Read-only borrowed views of the underlying tables.

func (ts *TreeSequence) Nodes() NodeTableView             { return ts.tables.nodes.View() }
func (ts *TreeSequence) Edges() EdgeTableView             { return ts.tables.edges.View() }
func (ts *TreeSequence) Sites() SiteTableView             { return ts.tables.sites.View() }
func (ts *TreeSequence) Mutations() MutationTableView     { return ts.tables.mutations.View() }
func (ts *TreeSequence) Individuals() IndividualTableView { return ts.tables.individuals.View() }
func (ts *TreeSequence) Populations() PopulationTableView { return ts.tables.populations.View() }
func (ts *TreeSequence) Migrations() MigrationTableView   { return ts.tables.migrations.View() }
func (ts *TreeSequence) Provenances() ProvenanceTableView { return ts.tables.provenances.View() }
