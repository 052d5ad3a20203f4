package treeseq

import "testing"

// buildCollection returns a small valid genealogy: two samples coalescing
// into one ancestor over a genome of length 10, with two mutated sites,
// one individual, one population, one migration and one provenance row.
func buildCollection(t testing.TB) *TableCollection {
	t.Helper()
	tc := NewTableCollection(10)

	p0 := must(tc.Populations().AddRowWithMetadata(popMeta{Name: "P0"}))
	i0 := tc.Individuals().AddRow(0, []float64{0.5}, nil)

	n0 := tc.Nodes().AddRow(SampleNodeFlags(), 0, p0, i0)
	n1 := tc.Nodes().AddRow(SampleNodeFlags(), 0, p0, i0)
	n2 := tc.Nodes().AddRow(0, 1, p0, NullID)

	tc.Edges().AddRow(0, 10, n2, n0)
	tc.Edges().AddRow(0, 10, n2, n1)

	s0 := tc.Sites().AddRow(1, "A")
	s1 := tc.Sites().AddRow(5, "C")
	tc.Mutations().AddRow(s0, n0, NullID, UnknownTime, "T")
	tc.Mutations().AddRow(s1, n1, NullID, UnknownTime, "G")

	tc.Migrations().AddRow(0, 10, n0, p0, p0, 0.5)
	tc.Provenances().AddRow("2024-06-01T12:00:00Z", `{"software":"test"}`)
	return tc
}

func TestCollectionEqualsItself(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	deepEqual(t, a.Equals(b, 0), true)
	deepEqual(t, b.Equals(a, 0), true)
}

func TestCollectionEqualsSequenceLength(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	b.SetSequenceLength(20)
	deepEqual(t, a.Equals(b, 0), false)
}

func TestCollectionEqualsIgnoreMetadata(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	must(b.Nodes().AddRowWithMetadata(0, 2, NullID, NullID, popMeta{Name: "m"}))
	a.Nodes().AddRow(0, 2, NullID, NullID)

	deepEqual(t, a.Equals(b, 0), false)
	deepEqual(t, a.Equals(b, CmpIgnoreMetadata), true)
}

func TestCollectionEqualsIgnoreTSMetadata(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	b.SetRawMetadata([]byte("blob"))
	b.SetMetadataSchema("schema")

	deepEqual(t, a.Equals(b, 0), false)
	deepEqual(t, a.Equals(b, CmpIgnoreTSMetadata), true)
}

func TestCollectionEqualsIgnoreProvenance(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	b.Provenances().AddRow("2024-06-02T00:00:00Z", `{"software":"other"}`)

	deepEqual(t, a.Equals(b, 0), false)
	deepEqual(t, a.Equals(b, CmpIgnoreProvenance), true)
}

func TestCollectionEqualsIgnoreTimestamps(t *testing.T) {
	a := buildCollection(t)
	b := buildCollection(t)
	// Same records, different timestamps.
	a.Provenances().AddRow("2024-01-01T00:00:00Z", `{"step":2}`)
	b.Provenances().AddRow("2025-01-01T00:00:00Z", `{"step":2}`)

	deepEqual(t, a.Equals(b, 0), false)
	deepEqual(t, a.Equals(b, CmpIgnoreTimestamps), true)
}

func TestCollectionClearDefaults(t *testing.T) {
	tc := buildCollection(t)
	tc.SetRawMetadata([]byte("blob"))
	tc.SetMetadataSchema("schema")
	tc.Nodes().SetMetadataSchema("node schema")

	tc.Clear(0)
	deepEqual(t, tc.Nodes().NumRows(), 0)
	deepEqual(t, tc.Edges().NumRows(), 0)
	deepEqual(t, tc.Sites().NumRows(), 0)
	deepEqual(t, tc.Mutations().NumRows(), 0)
	deepEqual(t, tc.Individuals().NumRows(), 0)
	deepEqual(t, tc.Populations().NumRows(), 0)
	deepEqual(t, tc.Migrations().NumRows(), 0)
	// Provenance, schemas and top-level metadata survive a plain clear.
	deepEqual(t, tc.Provenances().NumRows(), 1)
	deepEqual(t, tc.Nodes().MetadataSchema(), "node schema")
	deepEqual(t, string(tc.RawMetadata()), "blob")
	deepEqual(t, tc.MetadataSchema(), "schema")
}

func TestCollectionClearEverything(t *testing.T) {
	tc := buildCollection(t)
	tc.SetRawMetadata([]byte("blob"))
	tc.SetMetadataSchema("schema")
	tc.Nodes().SetMetadataSchema("node schema")

	tc.Clear(ClearMetadataSchemas | ClearTSMetadataAndSchema | ClearProvenance)
	deepEqual(t, tc.Provenances().NumRows(), 0)
	deepEqual(t, tc.Nodes().MetadataSchema(), "")
	isempty(t, tc.RawMetadata())
	deepEqual(t, tc.MetadataSchema(), "")
}

func TestCollectionClearDropsIndexes(t *testing.T) {
	tc := buildCollection(t)
	ensure(tc.BuildIndex())
	deepEqual(t, tc.HasIndex(), true)

	tc.Clear(0)
	deepEqual(t, tc.HasIndex(), false)
}

func TestBuildIndexOrders(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(SampleNodeFlags(), 0, NullID, NullID)
	n1 := tc.Nodes().AddRow(0, 1, NullID, NullID)
	n2 := tc.Nodes().AddRow(0, 2, NullID, NullID)
	// Deliberately inserted out of genome order.
	e0 := tc.Edges().AddRow(5, 10, n2, n1)
	e1 := tc.Edges().AddRow(0, 10, n1, n0)
	e2 := tc.Edges().AddRow(0, 5, n2, n1)

	ensure(tc.BuildIndex())
	deepEqual(t, tc.indexes.insertion, []EdgeID{e1, e2, e0})
	// Removal order: ascending right; ties broken by descending parent time.
	deepEqual(t, tc.indexes.removal, []EdgeID{e2, e0, e1})
}

func TestBuildIndexRejectsDanglingParent(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Edges().AddRow(0, 10, NodeID(5), NodeID(0))
	if err := tc.BuildIndex(); err == nil {
		t.Fatalf("BuildIndex succeeded with a dangling parent")
	}
	deepEqual(t, tc.HasIndex(), false)
}

func TestCollectionStats(t *testing.T) {
	tc := buildCollection(t)
	stats := tc.Stats()
	deepEqual(t, stats["nodes"].Rows, 3)
	deepEqual(t, stats["edges"].Rows, 2)
	deepEqual(t, stats["populations"].Rows, 1)
	if stats["populations"].MetadataBytes == 0 {
		t.Errorf("population metadata bytes not accounted for")
	}
	if stats["nodes"].PayloadBytes == 0 {
		t.Errorf("node payload bytes not accounted for")
	}
}

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}

func isempty[T any, S ~[]T](t testing.TB, a S) {
	if len(a) > 0 {
		t.Helper()
		t.Errorf("** got %v, wanted empty slice", a)
	}
}
