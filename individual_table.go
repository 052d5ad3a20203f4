package treeseq

// IndividualRow is one row of an individual table: an organism one or more
// nodes belong to, with an optional spatial location and parent references.
type IndividualRow struct {
	ID       IndividualID
	Flags    IndividualFlags
	Location []float64
	Parents  []IndividualID
	Metadata []byte
}

type individualColumns struct {
	flags    []IndividualFlags
	location raggedVec[float64]
	parents  raggedVec[IndividualID]
	meta     metadataColumn
}

func (c *individualColumns) numRows() int32 { return int32(len(c.flags)) }

func makeIndividualRow(c *individualColumns, pos int32) (IndividualRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return IndividualRow{}, false
	}
	return IndividualRow{
		ID:       IndividualID(pos),
		Flags:    c.flags[pos],
		Location: c.location.at(pos),
		Parents:  c.parents.at(pos),
		Metadata: c.meta.at(pos),
	}, true
}

// IndividualTableView is a read-only borrowed view of an individual table.
type IndividualTableView struct {
	cols  *individualColumns
	codec MetadataCodec
}

func (v IndividualTableView) Name() string { return "individuals" }

func (v IndividualTableView) NumRows() int { return int(v.cols.numRows()) }

func (v IndividualTableView) Row(id IndividualID) (IndividualRow, bool) {
	return makeIndividualRow(v.cols, int32(id))
}

func (v IndividualTableView) rowAt(pos int32) (IndividualRow, bool) {
	return makeIndividualRow(v.cols, pos)
}

func (v IndividualTableView) RawMetadata(id IndividualID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v IndividualTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v IndividualTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v IndividualTableView) Iter() *TableIterator[IndividualRow] {
	return newTableIterator[IndividualRow](v)
}

// IndividualTable is a standalone individual table that owns its columns.
// The zero value is an empty table with an empty schema and the default
// codec.
type IndividualTable struct {
	cols  individualColumns
	codec MetadataCodec
}

// NewIndividualTable returns an empty individual table.
func NewIndividualTable() *IndividualTable { return &IndividualTable{} }

func (t *IndividualTable) View() IndividualTableView {
	return IndividualTableView{cols: &t.cols, codec: t.codec}
}

func (t *IndividualTable) Name() string { return t.View().Name() }
func (t *IndividualTable) NumRows() int { return t.View().NumRows() }

func (t *IndividualTable) Row(id IndividualID) (IndividualRow, bool) { return t.View().Row(id) }

func (t *IndividualTable) rowAt(pos int32) (IndividualRow, bool) {
	return makeIndividualRow(&t.cols, pos)
}

func (t *IndividualTable) RawMetadata(id IndividualID) ([]byte, bool) {
	return t.View().RawMetadata(id)
}

func (t *IndividualTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *IndividualTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *IndividualTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *IndividualTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *IndividualTable) Iter() *TableIterator[IndividualRow] {
	return newTableIterator[IndividualRow](t.View())
}

// AddRow appends a row without metadata and returns its id. location and
// parents may be nil.
func (t *IndividualTable) AddRow(flags IndividualFlags, location []float64, parents []IndividualID) IndividualID {
	return t.addRow(flags, location, parents, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *IndividualTable) AddRowWithMetadata(flags IndividualFlags, location []float64, parents []IndividualID, meta any) (IndividualID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(flags, location, parents, raw), nil
}

func (t *IndividualTable) addRow(flags IndividualFlags, location []float64, parents []IndividualID, meta []byte) IndividualID {
	id := IndividualID(t.cols.numRows())
	t.cols.flags = append(t.cols.flags, flags)
	t.cols.location.appendRow(location)
	t.cols.parents.appendRow(parents)
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *IndividualTable) Clear(opts TableClearOptions) {
	t.cols.flags = t.cols.flags[:0]
	t.cols.location.clear()
	t.cols.parents.clear()
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
