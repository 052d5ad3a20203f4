package treeseq

// PopulationRow is one row of a population table. Populations carry no
// payload beyond their metadata.
type PopulationRow struct {
	ID       PopulationID
	Metadata []byte
}

type populationColumns struct {
	meta metadataColumn
}

func (c *populationColumns) numRows() int32 {
	return c.meta.raw.numRows()
}

func makePopulationRow(c *populationColumns, pos int32) (PopulationRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return PopulationRow{}, false
	}
	return PopulationRow{
		ID:       PopulationID(pos),
		Metadata: c.meta.at(pos),
	}, true
}

// PopulationTableView is a read-only borrowed view of a population table.
// It holds no storage of its own and must not outlive the owned table or
// collection it came from.
type PopulationTableView struct {
	cols  *populationColumns
	codec MetadataCodec
}

func (v PopulationTableView) Name() string { return "populations" }

// NumRows returns the number of rows.
func (v PopulationTableView) NumRows() int { return int(v.cols.numRows()) }

// Row returns row id of the table, or ok == false for any id outside
// [0, NumRows), including negative ids.
func (v PopulationTableView) Row(id PopulationID) (PopulationRow, bool) {
	return makePopulationRow(v.cols, int32(id))
}

func (v PopulationTableView) rowAt(pos int32) (PopulationRow, bool) {
	return makePopulationRow(v.cols, pos)
}

// RawMetadata implements MetadataSource; see Metadata for decoding.
func (v PopulationTableView) RawMetadata(id PopulationID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v PopulationTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

// MetadataSchema returns the table's metadata schema text.
func (v PopulationTableView) MetadataSchema() string { return v.cols.meta.schema }

// Iter returns a fresh iterator over all rows in ascending id order.
func (v PopulationTableView) Iter() *TableIterator[PopulationRow] {
	return newTableIterator[PopulationRow](v)
}

// PopulationTable is a standalone population table that owns its columns.
// The zero value is an empty table with an empty schema and the default
// metadata codec.
type PopulationTable struct {
	cols  populationColumns
	codec MetadataCodec
}

// NewPopulationTable returns an empty population table.
func NewPopulationTable() *PopulationTable { return &PopulationTable{} }

// View returns a borrowed read-only view over this table's columns.
// The view observes later mutations made through the table.
func (t *PopulationTable) View() PopulationTableView {
	return PopulationTableView{cols: &t.cols, codec: t.codec}
}

func (t *PopulationTable) Name() string { return t.View().Name() }
func (t *PopulationTable) NumRows() int { return t.View().NumRows() }

func (t *PopulationTable) Row(id PopulationID) (PopulationRow, bool) { return t.View().Row(id) }

func (t *PopulationTable) rowAt(pos int32) (PopulationRow, bool) {
	return makePopulationRow(&t.cols, pos)
}

func (t *PopulationTable) RawMetadata(id PopulationID) ([]byte, bool) {
	return t.View().RawMetadata(id)
}

func (t *PopulationTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *PopulationTable) MetadataSchema() string       { return t.cols.meta.schema }

// SetMetadataCodec sets the codec used by AddRowWithMetadata and Metadata.
func (t *PopulationTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }

// SetMetadataSchema sets the table's metadata schema text.
func (t *PopulationTable) SetMetadataSchema(schema string) { t.cols.meta.schema = schema }

func (t *PopulationTable) Iter() *TableIterator[PopulationRow] {
	return newTableIterator[PopulationRow](t.View())
}

// AddRow appends a row without metadata and returns its id.
// Ids are assigned sequentially from zero in insertion order.
func (t *PopulationTable) AddRow() PopulationID {
	id := PopulationID(t.cols.numRows())
	t.cols.meta.appendRow(nil)
	return id
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *PopulationTable) AddRowWithMetadata(meta any) (PopulationID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	id := PopulationID(t.cols.numRows())
	t.cols.meta.appendRow(raw)
	return id, nil
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *PopulationTable) Clear(opts TableClearOptions) {
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
