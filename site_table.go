package treeseq

// SiteRow is one row of a site table: a position on the genome with the
// allele ancestral to all mutations at that position.
type SiteRow struct {
	ID             SiteID
	Position       float64
	AncestralState string
	Metadata       []byte
}

type siteColumns struct {
	position  []float64
	ancestral raggedColumn
	meta      metadataColumn
}

func (c *siteColumns) numRows() int32 { return int32(len(c.position)) }

func makeSiteRow(c *siteColumns, pos int32) (SiteRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return SiteRow{}, false
	}
	return SiteRow{
		ID:             SiteID(pos),
		Position:       c.position[pos],
		AncestralState: string(c.ancestral.at(pos)),
		Metadata:       c.meta.at(pos),
	}, true
}

// SiteTableView is a read-only borrowed view of a site table.
type SiteTableView struct {
	cols  *siteColumns
	codec MetadataCodec
}

func (v SiteTableView) Name() string { return "sites" }

func (v SiteTableView) NumRows() int { return int(v.cols.numRows()) }

func (v SiteTableView) Row(id SiteID) (SiteRow, bool) {
	return makeSiteRow(v.cols, int32(id))
}

func (v SiteTableView) rowAt(pos int32) (SiteRow, bool) {
	return makeSiteRow(v.cols, pos)
}

func (v SiteTableView) RawMetadata(id SiteID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v SiteTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v SiteTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v SiteTableView) Iter() *TableIterator[SiteRow] {
	return newTableIterator[SiteRow](v)
}

// SiteTable is a standalone site table that owns its columns. The zero
// value is an empty table with an empty schema and the default codec.
type SiteTable struct {
	cols  siteColumns
	codec MetadataCodec
}

// NewSiteTable returns an empty site table.
func NewSiteTable() *SiteTable { return &SiteTable{} }

func (t *SiteTable) View() SiteTableView {
	return SiteTableView{cols: &t.cols, codec: t.codec}
}

func (t *SiteTable) Name() string { return t.View().Name() }
func (t *SiteTable) NumRows() int { return t.View().NumRows() }

func (t *SiteTable) Row(id SiteID) (SiteRow, bool) { return t.View().Row(id) }

func (t *SiteTable) rowAt(pos int32) (SiteRow, bool) {
	return makeSiteRow(&t.cols, pos)
}

func (t *SiteTable) RawMetadata(id SiteID) ([]byte, bool) { return t.View().RawMetadata(id) }

func (t *SiteTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *SiteTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *SiteTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *SiteTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *SiteTable) Iter() *TableIterator[SiteRow] {
	return newTableIterator[SiteRow](t.View())
}

// AddRow appends a row without metadata and returns its id.
func (t *SiteTable) AddRow(position float64, ancestralState string) SiteID {
	return t.addRow(position, ancestralState, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *SiteTable) AddRowWithMetadata(position float64, ancestralState string, meta any) (SiteID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(position, ancestralState, raw), nil
}

func (t *SiteTable) addRow(position float64, ancestralState string, meta []byte) SiteID {
	id := SiteID(t.cols.numRows())
	t.cols.position = append(t.cols.position, position)
	t.cols.ancestral.appendRow([]byte(ancestralState))
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *SiteTable) Clear(opts TableClearOptions) {
	t.cols.position = t.cols.position[:0]
	t.cols.ancestral.clear()
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
