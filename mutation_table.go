package treeseq

import "math"

// UnknownTime marks a mutation whose time is not known. NaN never compares
// equal to itself, so use MutationRow.TimeIsUnknown rather than ==.
var UnknownTime = math.NaN()

// MutationRow is one row of a mutation table: a change of allelic state at
// a site, carried by a node, optionally descending from a parent mutation
// at the same site.
type MutationRow struct {
	ID           MutationID
	Site         SiteID
	Node         NodeID
	Parent       MutationID
	Time         float64
	DerivedState string
	Metadata     []byte
}

// TimeIsUnknown reports whether the mutation's time is unknown.
func (r MutationRow) TimeIsUnknown() bool { return math.IsNaN(r.Time) }

type mutationColumns struct {
	site    []SiteID
	node    []NodeID
	parent  []MutationID
	time    []float64
	derived raggedColumn
	meta    metadataColumn
}

func (c *mutationColumns) numRows() int32 { return int32(len(c.site)) }

func makeMutationRow(c *mutationColumns, pos int32) (MutationRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return MutationRow{}, false
	}
	return MutationRow{
		ID:           MutationID(pos),
		Site:         c.site[pos],
		Node:         c.node[pos],
		Parent:       c.parent[pos],
		Time:         c.time[pos],
		DerivedState: string(c.derived.at(pos)),
		Metadata:     c.meta.at(pos),
	}, true
}

// MutationTableView is a read-only borrowed view of a mutation table.
type MutationTableView struct {
	cols  *mutationColumns
	codec MetadataCodec
}

func (v MutationTableView) Name() string { return "mutations" }

func (v MutationTableView) NumRows() int { return int(v.cols.numRows()) }

func (v MutationTableView) Row(id MutationID) (MutationRow, bool) {
	return makeMutationRow(v.cols, int32(id))
}

func (v MutationTableView) rowAt(pos int32) (MutationRow, bool) {
	return makeMutationRow(v.cols, pos)
}

func (v MutationTableView) RawMetadata(id MutationID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v MutationTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v MutationTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v MutationTableView) Iter() *TableIterator[MutationRow] {
	return newTableIterator[MutationRow](v)
}

// MutationTable is a standalone mutation table that owns its columns. The
// zero value is an empty table with an empty schema and the default codec.
type MutationTable struct {
	cols  mutationColumns
	codec MetadataCodec
}

// NewMutationTable returns an empty mutation table.
func NewMutationTable() *MutationTable { return &MutationTable{} }

func (t *MutationTable) View() MutationTableView {
	return MutationTableView{cols: &t.cols, codec: t.codec}
}

func (t *MutationTable) Name() string { return t.View().Name() }
func (t *MutationTable) NumRows() int { return t.View().NumRows() }

func (t *MutationTable) Row(id MutationID) (MutationRow, bool) { return t.View().Row(id) }

func (t *MutationTable) rowAt(pos int32) (MutationRow, bool) {
	return makeMutationRow(&t.cols, pos)
}

func (t *MutationTable) RawMetadata(id MutationID) ([]byte, bool) { return t.View().RawMetadata(id) }

func (t *MutationTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *MutationTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *MutationTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *MutationTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *MutationTable) Iter() *TableIterator[MutationRow] {
	return newTableIterator[MutationRow](t.View())
}

// AddRow appends a row without metadata and returns its id. Use NullID for
// a mutation with no parent and UnknownTime for an unknown time.
func (t *MutationTable) AddRow(site SiteID, node NodeID, parent MutationID, time float64, derivedState string) MutationID {
	return t.addRow(site, node, parent, time, derivedState, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *MutationTable) AddRowWithMetadata(site SiteID, node NodeID, parent MutationID, time float64, derivedState string, meta any) (MutationID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(site, node, parent, time, derivedState, raw), nil
}

func (t *MutationTable) addRow(site SiteID, node NodeID, parent MutationID, time float64, derivedState string, meta []byte) MutationID {
	id := MutationID(t.cols.numRows())
	t.cols.site = append(t.cols.site, site)
	t.cols.node = append(t.cols.node, node)
	t.cols.parent = append(t.cols.parent, parent)
	t.cols.time = append(t.cols.time, time)
	t.cols.derived.appendRow([]byte(derivedState))
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *MutationTable) Clear(opts TableClearOptions) {
	t.cols.site = t.cols.site[:0]
	t.cols.node = t.cols.node[:0]
	t.cols.parent = t.cols.parent[:0]
	t.cols.time = t.cols.time[:0]
	t.cols.derived.clear()
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
