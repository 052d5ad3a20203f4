package treeseq

// EdgeRow is one row of an edge table: a parent-child relationship over the
// genome interval [Left, Right).
type EdgeRow struct {
	ID       EdgeID
	Left     float64
	Right    float64
	Parent   NodeID
	Child    NodeID
	Metadata []byte
}

type edgeColumns struct {
	left   []float64
	right  []float64
	parent []NodeID
	child  []NodeID
	meta   metadataColumn
}

func (c *edgeColumns) numRows() int32 { return int32(len(c.left)) }

func makeEdgeRow(c *edgeColumns, pos int32) (EdgeRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return EdgeRow{}, false
	}
	return EdgeRow{
		ID:       EdgeID(pos),
		Left:     c.left[pos],
		Right:    c.right[pos],
		Parent:   c.parent[pos],
		Child:    c.child[pos],
		Metadata: c.meta.at(pos),
	}, true
}

// EdgeTableView is a read-only borrowed view of an edge table.
type EdgeTableView struct {
	cols  *edgeColumns
	codec MetadataCodec
}

func (v EdgeTableView) Name() string { return "edges" }

func (v EdgeTableView) NumRows() int { return int(v.cols.numRows()) }

func (v EdgeTableView) Row(id EdgeID) (EdgeRow, bool) {
	return makeEdgeRow(v.cols, int32(id))
}

func (v EdgeTableView) rowAt(pos int32) (EdgeRow, bool) {
	return makeEdgeRow(v.cols, pos)
}

func (v EdgeTableView) RawMetadata(id EdgeID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v EdgeTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v EdgeTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v EdgeTableView) Iter() *TableIterator[EdgeRow] {
	return newTableIterator[EdgeRow](v)
}

// EdgeTable is a standalone edge table that owns its columns. The zero
// value is an empty table with an empty schema and the default codec.
type EdgeTable struct {
	cols  edgeColumns
	codec MetadataCodec
}

// NewEdgeTable returns an empty edge table.
func NewEdgeTable() *EdgeTable { return &EdgeTable{} }

func (t *EdgeTable) View() EdgeTableView {
	return EdgeTableView{cols: &t.cols, codec: t.codec}
}

func (t *EdgeTable) Name() string { return t.View().Name() }
func (t *EdgeTable) NumRows() int { return t.View().NumRows() }

func (t *EdgeTable) Row(id EdgeID) (EdgeRow, bool) { return t.View().Row(id) }

func (t *EdgeTable) rowAt(pos int32) (EdgeRow, bool) {
	return makeEdgeRow(&t.cols, pos)
}

func (t *EdgeTable) RawMetadata(id EdgeID) ([]byte, bool) { return t.View().RawMetadata(id) }

func (t *EdgeTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *EdgeTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *EdgeTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *EdgeTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *EdgeTable) Iter() *TableIterator[EdgeRow] {
	return newTableIterator[EdgeRow](t.View())
}

// AddRow appends a row without metadata and returns its id.
func (t *EdgeTable) AddRow(left, right float64, parent, child NodeID) EdgeID {
	return t.addRow(left, right, parent, child, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *EdgeTable) AddRowWithMetadata(left, right float64, parent, child NodeID, meta any) (EdgeID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(left, right, parent, child, raw), nil
}

func (t *EdgeTable) addRow(left, right float64, parent, child NodeID, meta []byte) EdgeID {
	id := EdgeID(t.cols.numRows())
	t.cols.left = append(t.cols.left, left)
	t.cols.right = append(t.cols.right, right)
	t.cols.parent = append(t.cols.parent, parent)
	t.cols.child = append(t.cols.child, child)
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *EdgeTable) Clear(opts TableClearOptions) {
	t.cols.left = t.cols.left[:0]
	t.cols.right = t.cols.right[:0]
	t.cols.parent = t.cols.parent[:0]
	t.cols.child = t.cols.child[:0]
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
