package treeseq

// MigrationRow is one row of a migration table: a node moving from a source
// to a destination population at a point in time, over the genome interval
// [Left, Right).
type MigrationRow struct {
	ID       MigrationID
	Left     float64
	Right    float64
	Node     NodeID
	Source   PopulationID
	Dest     PopulationID
	Time     float64
	Metadata []byte
}

type migrationColumns struct {
	left   []float64
	right  []float64
	node   []NodeID
	source []PopulationID
	dest   []PopulationID
	time   []float64
	meta   metadataColumn
}

func (c *migrationColumns) numRows() int32 { return int32(len(c.left)) }

func makeMigrationRow(c *migrationColumns, pos int32) (MigrationRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return MigrationRow{}, false
	}
	return MigrationRow{
		ID:       MigrationID(pos),
		Left:     c.left[pos],
		Right:    c.right[pos],
		Node:     c.node[pos],
		Source:   c.source[pos],
		Dest:     c.dest[pos],
		Time:     c.time[pos],
		Metadata: c.meta.at(pos),
	}, true
}

// MigrationTableView is a read-only borrowed view of a migration table.
type MigrationTableView struct {
	cols  *migrationColumns
	codec MetadataCodec
}

func (v MigrationTableView) Name() string { return "migrations" }

func (v MigrationTableView) NumRows() int { return int(v.cols.numRows()) }

func (v MigrationTableView) Row(id MigrationID) (MigrationRow, bool) {
	return makeMigrationRow(v.cols, int32(id))
}

func (v MigrationTableView) rowAt(pos int32) (MigrationRow, bool) {
	return makeMigrationRow(v.cols, pos)
}

func (v MigrationTableView) RawMetadata(id MigrationID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v MigrationTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v MigrationTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v MigrationTableView) Iter() *TableIterator[MigrationRow] {
	return newTableIterator[MigrationRow](v)
}

// MigrationTable is a standalone migration table that owns its columns.
// The zero value is an empty table with an empty schema and the default
// codec.
type MigrationTable struct {
	cols  migrationColumns
	codec MetadataCodec
}

// NewMigrationTable returns an empty migration table.
func NewMigrationTable() *MigrationTable { return &MigrationTable{} }

func (t *MigrationTable) View() MigrationTableView {
	return MigrationTableView{cols: &t.cols, codec: t.codec}
}

func (t *MigrationTable) Name() string { return t.View().Name() }
func (t *MigrationTable) NumRows() int { return t.View().NumRows() }

func (t *MigrationTable) Row(id MigrationID) (MigrationRow, bool) { return t.View().Row(id) }

func (t *MigrationTable) rowAt(pos int32) (MigrationRow, bool) {
	return makeMigrationRow(&t.cols, pos)
}

func (t *MigrationTable) RawMetadata(id MigrationID) ([]byte, bool) {
	return t.View().RawMetadata(id)
}

func (t *MigrationTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *MigrationTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *MigrationTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *MigrationTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *MigrationTable) Iter() *TableIterator[MigrationRow] {
	return newTableIterator[MigrationRow](t.View())
}

// AddRow appends a row without metadata and returns its id.
func (t *MigrationTable) AddRow(left, right float64, node NodeID, source, dest PopulationID, time float64) MigrationID {
	return t.addRow(left, right, node, source, dest, time, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *MigrationTable) AddRowWithMetadata(left, right float64, node NodeID, source, dest PopulationID, time float64, meta any) (MigrationID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(left, right, node, source, dest, time, raw), nil
}

func (t *MigrationTable) addRow(left, right float64, node NodeID, source, dest PopulationID, time float64, meta []byte) MigrationID {
	id := MigrationID(t.cols.numRows())
	t.cols.left = append(t.cols.left, left)
	t.cols.right = append(t.cols.right, right)
	t.cols.node = append(t.cols.node, node)
	t.cols.source = append(t.cols.source, source)
	t.cols.dest = append(t.cols.dest, dest)
	t.cols.time = append(t.cols.time, time)
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *MigrationTable) Clear(opts TableClearOptions) {
	t.cols.left = t.cols.left[:0]
	t.cols.right = t.cols.right[:0]
	t.cols.node = t.cols.node[:0]
	t.cols.source = t.cols.source[:0]
	t.cols.dest = t.cols.dest[:0]
	t.cols.time = t.cols.time[:0]
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
