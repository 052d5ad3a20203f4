package treeseq

import (
	"errors"
	"testing"
)

func TestCheckIntegrityValidCollection(t *testing.T) {
	tc := buildCollection(t)
	ensure(tc.CheckIntegrity(0))

	ensure(tc.BuildIndex())
	ensure(tc.CheckIntegrity(CheckTrees))
}

func TestCheckIntegrityNodeReferences(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Nodes().AddRow(0, 0, PopulationID(3), NullID)
	wantIntegrityError(t, tc.CheckIntegrity(0), "nodes")

	tc2 := NewTableCollection(10)
	tc2.Nodes().AddRow(0, 0, NullID, IndividualID(1))
	wantIntegrityError(t, tc2.CheckIntegrity(0), "nodes")
}

func TestCheckIntegrityEdgeTimes(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(0, 1, NullID, NullID)
	n1 := tc.Nodes().AddRow(0, 1, NullID, NullID)
	tc.Edges().AddRow(0, 10, n1, n0)
	wantIntegrityError(t, tc.CheckIntegrity(0), "edges")
}

func TestCheckIntegrityEdgeInterval(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(0, 0, NullID, NullID)
	n1 := tc.Nodes().AddRow(0, 1, NullID, NullID)
	tc.Edges().AddRow(4, 4, n1, n0)
	wantIntegrityError(t, tc.CheckIntegrity(0), "edges")

	tc2 := NewTableCollection(10)
	n0 = tc2.Nodes().AddRow(0, 0, NullID, NullID)
	n1 = tc2.Nodes().AddRow(0, 1, NullID, NullID)
	tc2.Edges().AddRow(0, 11, n1, n0)
	wantIntegrityError(t, tc2.CheckIntegrity(0), "edges")
}

func TestCheckIntegritySitePosition(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Sites().AddRow(10, "A") // position must be < sequence length
	wantIntegrityError(t, tc.CheckIntegrity(0), "sites")
}

func TestCheckIntegritySiteOrderingIsOptIn(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Sites().AddRow(5, "A")
	tc.Sites().AddRow(1, "C")

	ensure(tc.CheckIntegrity(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckSiteOrdering), "sites")
}

func TestCheckIntegritySiteDuplicatesIsOptIn(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Sites().AddRow(5, "A")
	tc.Sites().AddRow(5, "C")

	ensure(tc.CheckIntegrity(CheckSiteOrdering))
	wantIntegrityError(t, tc.CheckIntegrity(CheckSiteDuplicates), "sites")
}

func TestCheckIntegrityMutationParentSite(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(0, 0, NullID, NullID)
	s0 := tc.Sites().AddRow(1, "A")
	s1 := tc.Sites().AddRow(2, "C")
	m0 := tc.Mutations().AddRow(s0, n0, NullID, UnknownTime, "T")
	tc.Mutations().AddRow(s1, n0, m0, UnknownTime, "G")
	wantIntegrityError(t, tc.CheckIntegrity(0), "mutations")
}

func TestCheckIntegrityMutationOrdering(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(0, 0, NullID, NullID)
	s0 := tc.Sites().AddRow(1, "A")
	s1 := tc.Sites().AddRow(2, "C")
	tc.Mutations().AddRow(s1, n0, NullID, UnknownTime, "T")
	tc.Mutations().AddRow(s0, n0, NullID, UnknownTime, "G")

	ensure(tc.CheckIntegrity(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckMutationOrdering), "mutations")
}

func TestCheckIntegrityIndividualOrdering(t *testing.T) {
	tc := NewTableCollection(10)
	// The first individual references a parent that only comes later.
	tc.Individuals().AddRow(0, nil, []IndividualID{1})
	tc.Individuals().AddRow(0, nil, nil)

	ensure(tc.CheckIntegrity(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckIndividualOrdering), "individuals")
}

func TestCheckIntegrityMigrationOrdering(t *testing.T) {
	tc := NewTableCollection(10)
	n0 := tc.Nodes().AddRow(0, 0, PopulationID(0), NullID)
	tc.Populations().AddRow()
	tc.Migrations().AddRow(0, 10, n0, PopulationID(0), PopulationID(0), 2)
	tc.Migrations().AddRow(0, 10, n0, PopulationID(0), PopulationID(0), 1)

	ensure(tc.CheckIntegrity(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckMigrationOrdering), "migrations")
}

func TestCheckIntegrityIndexes(t *testing.T) {
	tc := buildCollection(t)
	wantIntegrityError(t, tc.CheckIntegrity(CheckIndexes), "indexes")

	ensure(tc.BuildIndex())
	ensure(tc.CheckIntegrity(CheckIndexes))

	// A stale index no longer matches the edge table.
	tc.Edges().AddRow(0, 10, NodeID(2), NodeID(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckIndexes), "indexes")
}

func TestCheckTreesImpliesAllChecks(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Sites().AddRow(5, "A")
	tc.Sites().AddRow(5, "C")
	ensure(tc.BuildIndex())

	// Passes the baseline, fails under CheckTrees via the duplicate check.
	ensure(tc.CheckIntegrity(0))
	wantIntegrityError(t, tc.CheckIntegrity(CheckTrees), "sites")
}

func wantIntegrityError(t testing.TB, err error, table string) {
	t.Helper()
	if err == nil {
		t.Fatalf("integrity check passed, wanted %s error", table)
	}
	var ierr *IntegrityError
	if !errors.As(err, &ierr) {
		t.Fatalf("got %T (%v), wanted *IntegrityError", err, err)
	}
	if ierr.Table != table {
		t.Fatalf("got error on table %s (%v), wanted %s", ierr.Table, err, table)
	}
}
