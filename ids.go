package treeseq

// NullID marks an absent optional reference (a node with no population,
// a mutation with no parent, etc.). Valid row identifiers are always >= 0.
const NullID = -1

type (
	// NodeID identifies a row of a node table.
	NodeID int32
	// EdgeID identifies a row of an edge table.
	EdgeID int32
	// SiteID identifies a row of a site table.
	SiteID int32
	// MutationID identifies a row of a mutation table.
	MutationID int32
	// IndividualID identifies a row of an individual table.
	IndividualID int32
	// PopulationID identifies a row of a population table.
	PopulationID int32
	// MigrationID identifies a row of a migration table.
	MigrationID int32
	// ProvenanceID identifies a row of a provenance table.
	ProvenanceID int32
)

// rowID is the constraint satisfied by every table identifier type.
type rowID interface {
	~int32
}

func (id NodeID) IsNull() bool       { return id == NullID }
func (id EdgeID) IsNull() bool       { return id == NullID }
func (id SiteID) IsNull() bool       { return id == NullID }
func (id MutationID) IsNull() bool   { return id == NullID }
func (id IndividualID) IsNull() bool { return id == NullID }
func (id PopulationID) IsNull() bool { return id == NullID }
func (id MigrationID) IsNull() bool  { return id == NullID }

// inRange reports whether id addresses an existing row of a table with
// nrows rows. Negative ids, including NullID, are out of range.
func inRange[ID rowID](id ID, nrows int32) bool {
	return id >= 0 && int32(id) < nrows
}

// validRef reports whether id is a valid optional reference into a table
// with nrows rows: either null or in range.
func validRef[ID rowID](id ID, nrows int32) bool {
	return id == NullID || inRange(id, nrows)
}
