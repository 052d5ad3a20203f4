package treeseq

// NodeRow is one row of a node table: a branching point (or sample) of the
// genealogy, born at a point in time, optionally tied to a population and
// an individual.
type NodeRow struct {
	ID         NodeID
	Flags      NodeFlags
	Time       float64
	Population PopulationID
	Individual IndividualID
	Metadata   []byte
}

// IsSample reports whether the node's flags mark it as a sample.
func (r NodeRow) IsSample() bool { return r.Flags.IsSample() }

type nodeColumns struct {
	flags      []NodeFlags
	time       []float64
	population []PopulationID
	individual []IndividualID
	meta       metadataColumn
}

func (c *nodeColumns) numRows() int32 { return int32(len(c.flags)) }

func makeNodeRow(c *nodeColumns, pos int32) (NodeRow, bool) {
	if pos < 0 || pos >= c.numRows() {
		return NodeRow{}, false
	}
	return NodeRow{
		ID:         NodeID(pos),
		Flags:      c.flags[pos],
		Time:       c.time[pos],
		Population: c.population[pos],
		Individual: c.individual[pos],
		Metadata:   c.meta.at(pos),
	}, true
}

// NodeTableView is a read-only borrowed view of a node table.
type NodeTableView struct {
	cols  *nodeColumns
	codec MetadataCodec
}

func (v NodeTableView) Name() string { return "nodes" }

func (v NodeTableView) NumRows() int { return int(v.cols.numRows()) }

func (v NodeTableView) Row(id NodeID) (NodeRow, bool) {
	return makeNodeRow(v.cols, int32(id))
}

func (v NodeTableView) rowAt(pos int32) (NodeRow, bool) {
	return makeNodeRow(v.cols, pos)
}

func (v NodeTableView) RawMetadata(id NodeID) ([]byte, bool) {
	if !inRange(int32(id), v.cols.numRows()) {
		return nil, false
	}
	b := v.cols.meta.at(int32(id))
	return b, b != nil
}

func (v NodeTableView) MetadataCodec() MetadataCodec { return resolveCodec(v.codec) }

func (v NodeTableView) MetadataSchema() string { return v.cols.meta.schema }

func (v NodeTableView) Iter() *TableIterator[NodeRow] {
	return newTableIterator[NodeRow](v)
}

// NodeTable is a standalone node table that owns its columns. The zero
// value is an empty table with an empty schema and the default codec.
type NodeTable struct {
	cols  nodeColumns
	codec MetadataCodec
}

// NewNodeTable returns an empty node table.
func NewNodeTable() *NodeTable { return &NodeTable{} }

func (t *NodeTable) View() NodeTableView {
	return NodeTableView{cols: &t.cols, codec: t.codec}
}

func (t *NodeTable) Name() string { return t.View().Name() }
func (t *NodeTable) NumRows() int { return t.View().NumRows() }

func (t *NodeTable) Row(id NodeID) (NodeRow, bool) { return t.View().Row(id) }

func (t *NodeTable) rowAt(pos int32) (NodeRow, bool) {
	return makeNodeRow(&t.cols, pos)
}

func (t *NodeTable) RawMetadata(id NodeID) ([]byte, bool) { return t.View().RawMetadata(id) }

func (t *NodeTable) MetadataCodec() MetadataCodec { return resolveCodec(t.codec) }
func (t *NodeTable) MetadataSchema() string       { return t.cols.meta.schema }

func (t *NodeTable) SetMetadataCodec(c MetadataCodec) { t.codec = c }
func (t *NodeTable) SetMetadataSchema(schema string)  { t.cols.meta.schema = schema }

func (t *NodeTable) Iter() *TableIterator[NodeRow] {
	return newTableIterator[NodeRow](t.View())
}

// AddRow appends a row without metadata and returns its id. Use NullID for
// an absent population or individual.
func (t *NodeTable) AddRow(flags NodeFlags, time float64, population PopulationID, individual IndividualID) NodeID {
	return t.addRow(flags, time, population, individual, nil)
}

// AddRowWithMetadata encodes meta with the table's codec and appends a row.
// If encoding fails, the row is not inserted and the table is unchanged.
func (t *NodeTable) AddRowWithMetadata(flags NodeFlags, time float64, population PopulationID, individual IndividualID, meta any) (NodeID, error) {
	raw, err := encodeMetadata(t.Name(), t.MetadataCodec(), meta)
	if err != nil {
		return NullID, err
	}
	return t.addRow(flags, time, population, individual, raw), nil
}

func (t *NodeTable) addRow(flags NodeFlags, time float64, population PopulationID, individual IndividualID, meta []byte) NodeID {
	id := NodeID(t.cols.numRows())
	t.cols.flags = append(t.cols.flags, flags)
	t.cols.time = append(t.cols.time, time)
	t.cols.population = append(t.cols.population, population)
	t.cols.individual = append(t.cols.individual, individual)
	t.cols.meta.appendRow(meta)
	return id
}

// Clear removes all rows. ClearMetadataSchemas additionally resets the
// metadata schema.
func (t *NodeTable) Clear(opts TableClearOptions) {
	t.cols.flags = t.cols.flags[:0]
	t.cols.time = t.cols.time[:0]
	t.cols.population = t.cols.population[:0]
	t.cols.individual = t.cols.individual[:0]
	t.cols.meta.clear(opts.Contains(ClearMetadataSchemas))
}
