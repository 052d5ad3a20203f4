package treeseq

// TableStats summarizes the memory footprint of one table.
type TableStats struct {
	Rows          int
	PayloadBytes  int
	MetadataBytes int
}

func (ts *TableStats) TotalBytes() int {
	return ts.PayloadBytes + ts.MetadataBytes
}

// Stats returns per-table statistics keyed by table name.
func (tc *TableCollection) Stats() map[string]TableStats {
	n := &tc.nodes.cols
	e := &tc.edges.cols
	s := &tc.sites.cols
	m := &tc.mutations.cols
	ind := &tc.individuals.cols
	pop := &tc.populations.cols
	mig := &tc.migrations.cols
	prov := &tc.provenances.cols
	return map[string]TableStats{
		"nodes": {
			Rows:          int(n.numRows()),
			PayloadBytes:  20 * len(n.flags),
			MetadataBytes: n.meta.byteSize(),
		},
		"edges": {
			Rows:          int(e.numRows()),
			PayloadBytes:  24 * len(e.left),
			MetadataBytes: e.meta.byteSize(),
		},
		"sites": {
			Rows:          int(s.numRows()),
			PayloadBytes:  8*len(s.position) + len(s.ancestral.data) + 8*len(s.ancestral.offsets),
			MetadataBytes: s.meta.byteSize(),
		},
		"mutations": {
			Rows:          int(m.numRows()),
			PayloadBytes:  20*len(m.site) + len(m.derived.data) + 8*len(m.derived.offsets),
			MetadataBytes: m.meta.byteSize(),
		},
		"individuals": {
			Rows:          int(ind.numRows()),
			PayloadBytes:  4*len(ind.flags) + 8*len(ind.location.data) + 8*len(ind.location.offsets) + 4*len(ind.parents.data) + 8*len(ind.parents.offsets),
			MetadataBytes: ind.meta.byteSize(),
		},
		"populations": {
			Rows:          int(pop.numRows()),
			MetadataBytes: pop.meta.byteSize(),
		},
		"migrations": {
			Rows:          int(mig.numRows()),
			PayloadBytes:  36 * len(mig.left),
			MetadataBytes: mig.meta.byteSize(),
		},
		"provenances": {
			Rows:         int(prov.numRows()),
			PayloadBytes: len(prov.timestamp.data) + 8*len(prov.timestamp.offsets) + len(prov.record.data) + 8*len(prov.record.offsets),
		},
	}
}
