package treeseq

import "time"

// ProvenanceRow is one row of a provenance table: a timestamped record of
// an operation that produced or transformed the data. Provenances carry no
// metadata column; the record itself is the payload.
type ProvenanceRow struct {
	ID        ProvenanceID
	Timestamp string
	Record    string
}

type provenanceColumns struct {
	timestamp raggedColumn
	record    raggedColumn
}

func (c *provenanceColumns) numRows() int32 { return c.record.numRows() }

func makeProvenanceRow(c *provenanceColumns, pos int32) (ProvenanceRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return ProvenanceRow{}, false
	}
	return ProvenanceRow{
		ID:        ProvenanceID(pos),
		Timestamp: string(c.timestamp.at(pos)),
		Record:    string(c.record.at(pos)),
	}, true
}

// ProvenanceTableView is a read-only borrowed view of a provenance table.
type ProvenanceTableView struct {
	cols *provenanceColumns
}

func (v ProvenanceTableView) Name() string { return "provenances" }

func (v ProvenanceTableView) NumRows() int { return int(v.cols.numRows()) }

func (v ProvenanceTableView) Row(id ProvenanceID) (ProvenanceRow, bool) {
	return makeProvenanceRow(v.cols, int32(id))
}

func (v ProvenanceTableView) rowAt(pos int32) (ProvenanceRow, bool) {
	return makeProvenanceRow(v.cols, pos)
}

func (v ProvenanceTableView) Iter() *TableIterator[ProvenanceRow] {
	return newTableIterator[ProvenanceRow](v)
}

// ProvenanceTable is a standalone provenance table that owns its columns.
// The zero value is an empty table.
type ProvenanceTable struct {
	cols provenanceColumns
}

// NewProvenanceTable returns an empty provenance table.
func NewProvenanceTable() *ProvenanceTable { return &ProvenanceTable{} }

func (t *ProvenanceTable) View() ProvenanceTableView {
	return ProvenanceTableView{cols: &t.cols}
}

func (t *ProvenanceTable) Name() string { return t.View().Name() }
func (t *ProvenanceTable) NumRows() int { return t.View().NumRows() }

func (t *ProvenanceTable) Row(id ProvenanceID) (ProvenanceRow, bool) { return t.View().Row(id) }

func (t *ProvenanceTable) rowAt(pos int32) (ProvenanceRow, bool) {
	return makeProvenanceRow(&t.cols, pos)
}

func (t *ProvenanceTable) Iter() *TableIterator[ProvenanceRow] {
	return newTableIterator[ProvenanceRow](t.View())
}

// AddRow appends a row and returns its id.
func (t *ProvenanceTable) AddRow(timestamp, record string) ProvenanceID {
	id := ProvenanceID(t.cols.numRows())
	t.cols.timestamp.appendRow([]byte(timestamp))
	t.cols.record.appendRow([]byte(record))
	return id
}

// AddRowNow appends a row timestamped with the current time in RFC 3339
// format, the convention the rest of the ecosystem expects.
func (t *ProvenanceTable) AddRowNow(record string) ProvenanceID {
	return t.AddRow(time.Now().UTC().Format(time.RFC3339), record)
}

// Clear removes all rows. Provenance tables have no metadata schema, so
// the options carry no extra meaning here.
func (t *ProvenanceTable) Clear(opts TableClearOptions) {
	t.cols.timestamp.clear()
	t.cols.record.clear()
}
