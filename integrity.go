package treeseq

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// CheckIntegrity verifies the internal consistency of the collection.
//
// Reference-range checks always run: every table's references must point at
// existing rows (or be null where null is allowed), intervals must lie
// within the genome, and times must be finite where required. The flag bits
// enable the per-table ordering checks, the duplicate-site check and the
// index check on top; CheckTrees enables all of them.
//
// The first violation found is returned as an *IntegrityError.
func (tc *TableCollection) CheckIntegrity(flags TableIntegrityCheckFlags) error {
	if flags.Contains(CheckTrees) {
		flags.Insert(CheckEdgeOrdering | CheckSiteOrdering | CheckSiteDuplicates |
			CheckMutationOrdering | CheckIndividualOrdering | CheckMigrationOrdering |
			CheckIndexes)
	}
	if !(tc.sequenceLength > 0) {
		return integrityErrf("collection", -1, "sequence length %v must be > 0", tc.sequenceLength)
	}
	if err := tc.checkNodes(); err != nil {
		return err
	}
	if err := tc.checkEdges(flags.Contains(CheckEdgeOrdering)); err != nil {
		return err
	}
	if err := tc.checkSites(flags.Contains(CheckSiteOrdering), flags.Contains(CheckSiteDuplicates)); err != nil {
		return err
	}
	if err := tc.checkMutations(flags.Contains(CheckMutationOrdering)); err != nil {
		return err
	}
	if err := tc.checkIndividuals(flags.Contains(CheckIndividualOrdering)); err != nil {
		return err
	}
	if err := tc.checkMigrations(flags.Contains(CheckMigrationOrdering)); err != nil {
		return err
	}
	if flags.Contains(CheckIndexes) {
		if err := tc.checkIndexes(); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TableCollection) checkNodes() error {
	c := &tc.nodes.cols
	npops := tc.populations.cols.numRows()
	nind := tc.individuals.cols.numRows()
	for i := int32(0); i < c.numRows(); i++ {
		if math.IsNaN(c.time[i]) {
			return integrityErrf("nodes", i, "time is NaN")
		}
		if !validRef(c.population[i], npops) {
			return integrityErrf("nodes", i, "population %d out of range", c.population[i])
		}
		if !validRef(c.individual[i], nind) {
			return integrityErrf("nodes", i, "individual %d out of range", c.individual[i])
		}
	}
	return nil
}

func (tc *TableCollection) checkEdges(ordering bool) error {
	c := &tc.edges.cols
	nnodes := tc.nodes.cols.numRows()
	times := tc.nodes.cols.time
	seenParent := roaring.New()
	var prevParent NodeID = NullID
	for i := int32(0); i < c.numRows(); i++ {
		parent, child := c.parent[i], c.child[i]
		if !inRange(parent, nnodes) {
			return integrityErrf("edges", i, "parent %d out of range", parent)
		}
		if !inRange(child, nnodes) {
			return integrityErrf("edges", i, "child %d out of range", child)
		}
		if parent == child {
			return integrityErrf("edges", i, "node %d is its own parent", parent)
		}
		if !(c.left[i] < c.right[i]) {
			return integrityErrf("edges", i, "bad interval [%v, %v)", c.left[i], c.right[i])
		}
		if c.left[i] < 0 || c.right[i] > tc.sequenceLength {
			return integrityErrf("edges", i, "interval [%v, %v) outside [0, %v)", c.left[i], c.right[i], tc.sequenceLength)
		}
		if !(times[child] < times[parent]) {
			return integrityErrf("edges", i, "child time %v not below parent time %v", times[child], times[parent])
		}
		if ordering {
			if i > 0 && times[parent] < times[c.parent[i-1]] {
				return integrityErrf("edges", i, "edges not sorted by parent time")
			}
			if parent != prevParent {
				if seenParent.Contains(uint32(parent)) {
					return integrityErrf("edges", i, "edges for parent %d are not contiguous", parent)
				}
				seenParent.Add(uint32(parent))
				prevParent = parent
			} else if i > 0 {
				if child < c.child[i-1] || (child == c.child[i-1] && c.left[i] <= c.left[i-1]) {
					return integrityErrf("edges", i, "edges for parent %d not sorted by child, left", parent)
				}
			}
		}
	}
	return nil
}

func (tc *TableCollection) checkSites(ordering, duplicates bool) error {
	c := &tc.sites.cols
	var dup map[float64]int32
	if duplicates {
		dup = make(map[float64]int32, c.numRows())
	}
	for i := int32(0); i < c.numRows(); i++ {
		pos := c.position[i]
		if pos < 0 || pos >= tc.sequenceLength {
			return integrityErrf("sites", i, "position %v outside [0, %v)", pos, tc.sequenceLength)
		}
		if ordering && i > 0 && pos < c.position[i-1] {
			return integrityErrf("sites", i, "sites not sorted by position")
		}
		if duplicates {
			if prev, ok := dup[pos]; ok {
				return integrityErrf("sites", i, "duplicate of site %d at position %v", prev, pos)
			}
			dup[pos] = i
		}
	}
	return nil
}

func (tc *TableCollection) checkMutations(ordering bool) error {
	c := &tc.mutations.cols
	nsites := tc.sites.cols.numRows()
	nnodes := tc.nodes.cols.numRows()
	nmuts := c.numRows()
	for i := int32(0); i < nmuts; i++ {
		if !inRange(c.site[i], nsites) {
			return integrityErrf("mutations", i, "site %d out of range", c.site[i])
		}
		if !inRange(c.node[i], nnodes) {
			return integrityErrf("mutations", i, "node %d out of range", c.node[i])
		}
		parent := c.parent[i]
		if !validRef(parent, nmuts) {
			return integrityErrf("mutations", i, "parent %d out of range", parent)
		}
		if int32(parent) == i {
			return integrityErrf("mutations", i, "mutation is its own parent")
		}
		if !parent.IsNull() && c.site[parent] != c.site[i] {
			return integrityErrf("mutations", i, "parent %d is at a different site", parent)
		}
		if t := c.time[i]; !math.IsNaN(t) && t < tc.nodes.cols.time[c.node[i]] {
			return integrityErrf("mutations", i, "time %v below node time %v", t, tc.nodes.cols.time[c.node[i]])
		}
		if ordering && i > 0 {
			if c.site[i] < c.site[i-1] {
				return integrityErrf("mutations", i, "mutations not sorted by site")
			}
			if !parent.IsNull() && int32(parent) > i {
				return integrityErrf("mutations", i, "parent %d does not precede mutation", parent)
			}
			if c.site[i] == c.site[i-1] {
				t, pt := c.time[i], c.time[i-1]
				if !math.IsNaN(t) && !math.IsNaN(pt) && t > pt {
					return integrityErrf("mutations", i, "mutation times increase within site %d", c.site[i])
				}
			}
		}
	}
	return nil
}

func (tc *TableCollection) checkIndividuals(ordering bool) error {
	c := &tc.individuals.cols
	nind := c.numRows()
	for i := int32(0); i < nind; i++ {
		for _, p := range c.parents.at(i) {
			if !validRef(p, nind) {
				return integrityErrf("individuals", i, "parent %d out of range", p)
			}
			if int32(p) == i {
				return integrityErrf("individuals", i, "individual is its own parent")
			}
			if ordering && !p.IsNull() && int32(p) > i {
				return integrityErrf("individuals", i, "parent %d does not precede individual", p)
			}
		}
	}
	return nil
}

func (tc *TableCollection) checkMigrations(ordering bool) error {
	c := &tc.migrations.cols
	nnodes := tc.nodes.cols.numRows()
	npops := tc.populations.cols.numRows()
	for i := int32(0); i < c.numRows(); i++ {
		if !inRange(c.node[i], nnodes) {
			return integrityErrf("migrations", i, "node %d out of range", c.node[i])
		}
		if !inRange(c.source[i], npops) {
			return integrityErrf("migrations", i, "source %d out of range", c.source[i])
		}
		if !inRange(c.dest[i], npops) {
			return integrityErrf("migrations", i, "dest %d out of range", c.dest[i])
		}
		if !(c.left[i] < c.right[i]) || c.left[i] < 0 || c.right[i] > tc.sequenceLength {
			return integrityErrf("migrations", i, "bad interval [%v, %v)", c.left[i], c.right[i])
		}
		if math.IsNaN(c.time[i]) {
			return integrityErrf("migrations", i, "time is NaN")
		}
		if ordering && i > 0 && c.time[i] < c.time[i-1] {
			return integrityErrf("migrations", i, "migrations not sorted by time")
		}
	}
	return nil
}

func (tc *TableCollection) checkIndexes() error {
	if tc.indexes == nil {
		return integrityErrf("indexes", -1, "edge indexes not built")
	}
	nrows := tc.edges.cols.numRows()
	if int32(len(tc.indexes.insertion)) != nrows || int32(len(tc.indexes.removal)) != nrows {
		return integrityErrf("indexes", -1, "index length does not match edge table")
	}
	if err := checkPermutation("insertion", tc.indexes.insertion, nrows); err != nil {
		return err
	}
	if err := checkPermutation("removal", tc.indexes.removal, nrows); err != nil {
		return err
	}
	edges := &tc.edges.cols
	for i := 1; i < len(tc.indexes.insertion); i++ {
		if edges.left[tc.indexes.insertion[i]] < edges.left[tc.indexes.insertion[i-1]] {
			return integrityErrf("indexes", int32(i), "insertion order not sorted by left")
		}
		if edges.right[tc.indexes.removal[i]] < edges.right[tc.indexes.removal[i-1]] {
			return integrityErrf("indexes", int32(i), "removal order not sorted by right")
		}
	}
	return nil
}

func checkPermutation(name string, order []EdgeID, nrows int32) error {
	seen := roaring.New()
	for i, e := range order {
		if !inRange(e, nrows) {
			return integrityErrf("indexes", int32(i), "%s order references edge %d out of range", name, e)
		}
		if seen.Contains(uint32(e)) {
			return integrityErrf("indexes", int32(i), "%s order references edge %d twice", name, e)
		}
		seen.Add(uint32(e))
	}
	return nil
}
