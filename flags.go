package treeseq

// RawFlags is the fixed-width carrier of every option-flag set.
type RawFlags = uint32

// Flag sets are plain bit sets: the zero value means "default behavior",
// union is |, and Contains tests membership. The bits themselves are
// declarative; they are consumed by the operation they are named after
// (equality, clearing, integrity checking, ...), not interpreted here.

func flagContains[F ~uint32](f, bits F) bool { return f&bits == bits }
func flagInsert[F ~uint32](f *F, bits F)     { *f |= bits }
func flagRemove[F ~uint32](f *F, bits F)     { *f &^= bits }

// SimplificationOptions controls the behavior of simplification, the
// external operation that prunes a table collection down to the history of
// a set of samples.
//
// KeepUnary and KeepUnaryInIndividuals must not both be set. This layer
// does not reject the combination; the simplification operation consuming
// the options is responsible for doing so.
type SimplificationOptions uint32

const (
	// SimplifyFilterSites removes sites not referenced by mutations after
	// simplification and renumbers the survivors from zero.
	SimplifyFilterSites SimplificationOptions = 1 << iota
	// SimplifyFilterPopulations removes populations not referenced by nodes
	// after simplification and renumbers the survivors from zero.
	SimplifyFilterPopulations
	// SimplifyFilterIndividuals removes individuals not referenced by nodes
	// after simplification and renumbers the survivors from zero.
	SimplifyFilterIndividuals
	// SimplifyReduceToSiteTopology reduces the topology down to the trees
	// present at sites.
	SimplifyReduceToSiteTopology
	// SimplifyKeepUnary preserves unary nodes on the path from samples
	// to root.
	SimplifyKeepUnary
	// SimplifyKeepInputRoots retains history ancestral to the MRCA of
	// the samples.
	SimplifyKeepInputRoots
	// SimplifyKeepUnaryInIndividuals preserves unary nodes only when they
	// are associated with a row of the individual table.
	SimplifyKeepUnaryInIndividuals

	simplificationOptionsAll = SimplificationOptions(1<<iota) - 1
)

func (f SimplificationOptions) Contains(bits SimplificationOptions) bool {
	return flagContains(f, bits)
}
func (f *SimplificationOptions) Insert(bits SimplificationOptions) { flagInsert(f, bits) }
func (f *SimplificationOptions) Remove(bits SimplificationOptions) { flagRemove(f, bits) }
func (f SimplificationOptions) Bits() RawFlags                     { return RawFlags(f) }
func (f SimplificationOptions) IsValid() bool                      { return f&^simplificationOptionsAll == 0 }

// TableClearOptions modifies the behavior of table and collection clearing.
// Row data is always cleared; the bits opt into clearing more.
type TableClearOptions uint32

const (
	// ClearMetadataSchemas also resets per-table metadata schemas.
	ClearMetadataSchemas TableClearOptions = 1 << iota
	// ClearTSMetadataAndSchema also resets the collection's top-level
	// metadata and metadata schema.
	ClearTSMetadataAndSchema
	// ClearProvenance also clears the provenance table.
	ClearProvenance

	tableClearOptionsAll = TableClearOptions(1<<iota) - 1
)

func (f TableClearOptions) Contains(bits TableClearOptions) bool { return flagContains(f, bits) }
func (f *TableClearOptions) Insert(bits TableClearOptions)       { flagInsert(f, bits) }
func (f *TableClearOptions) Remove(bits TableClearOptions)       { flagRemove(f, bits) }
func (f TableClearOptions) Bits() RawFlags                       { return RawFlags(f) }
func (f TableClearOptions) IsValid() bool                        { return f&^tableClearOptionsAll == 0 }

// TableEqualityOptions modifies the behavior of structural comparison of
// table collections.
type TableEqualityOptions uint32

const (
	// CmpIgnoreMetadata excludes per-row metadata and metadata schemas
	// from the comparison.
	CmpIgnoreMetadata TableEqualityOptions = 1 << iota
	// CmpIgnoreTSMetadata excludes the collections' top-level metadata
	// and schema.
	CmpIgnoreTSMetadata
	// CmpIgnoreProvenance excludes the provenance tables.
	CmpIgnoreProvenance
	// CmpIgnoreTimestamps excludes provenance timestamps but still
	// compares provenance records.
	CmpIgnoreTimestamps

	tableEqualityOptionsAll = TableEqualityOptions(1<<iota) - 1
)

func (f TableEqualityOptions) Contains(bits TableEqualityOptions) bool { return flagContains(f, bits) }
func (f *TableEqualityOptions) Insert(bits TableEqualityOptions)       { flagInsert(f, bits) }
func (f *TableEqualityOptions) Remove(bits TableEqualityOptions)       { flagRemove(f, bits) }
func (f TableEqualityOptions) Bits() RawFlags                          { return RawFlags(f) }
func (f TableEqualityOptions) IsValid() bool                           { return f&^tableEqualityOptionsAll == 0 }

// TableSortOptions modifies the behavior of table collection sorting,
// an external operation.
type TableSortOptions uint32

const (
	// SortNoCheckIntegrity skips integrity validation before sorting.
	// The caller asserts the input is consistent enough to sort.
	SortNoCheckIntegrity TableSortOptions = 1 << iota

	tableSortOptionsAll = TableSortOptions(1<<iota) - 1
)

func (f TableSortOptions) Contains(bits TableSortOptions) bool { return flagContains(f, bits) }
func (f *TableSortOptions) Insert(bits TableSortOptions)       { flagInsert(f, bits) }
func (f *TableSortOptions) Remove(bits TableSortOptions)       { flagRemove(f, bits) }
func (f TableSortOptions) Bits() RawFlags                      { return RawFlags(f) }
func (f TableSortOptions) IsValid() bool                       { return f&^tableSortOptionsAll == 0 }

// IndividualTableSortOptions modifies the behavior of individual table
// sorting, an external operation. No bits are currently defined.
type IndividualTableSortOptions uint32

func (f IndividualTableSortOptions) Contains(bits IndividualTableSortOptions) bool {
	return flagContains(f, bits)
}
func (f *IndividualTableSortOptions) Insert(bits IndividualTableSortOptions) { flagInsert(f, bits) }
func (f *IndividualTableSortOptions) Remove(bits IndividualTableSortOptions) { flagRemove(f, bits) }
func (f IndividualTableSortOptions) Bits() RawFlags                          { return RawFlags(f) }
func (f IndividualTableSortOptions) IsValid() bool                           { return f == 0 }

// TreeFlags specifies the behavior of tree iteration, an external operation.
type TreeFlags uint32

const (
	// TreeSampleLists maintains sample-list linkage during iteration.
	TreeSampleLists TreeFlags = 1 << iota
	// TreeNoSampleCounts disables the per-node sample-count accumulation
	// that is otherwise maintained during iteration.
	TreeNoSampleCounts

	treeFlagsAll = TreeFlags(1<<iota) - 1
)

func (f TreeFlags) Contains(bits TreeFlags) bool { return flagContains(f, bits) }
func (f *TreeFlags) Insert(bits TreeFlags)       { flagInsert(f, bits) }
func (f *TreeFlags) Remove(bits TreeFlags)       { flagRemove(f, bits) }
func (f TreeFlags) Bits() RawFlags               { return RawFlags(f) }
func (f TreeFlags) IsValid() bool                { return f&^treeFlagsAll == 0 }

// TableOutputOptions modifies the behavior of Dump. No bits are currently
// defined: dumping treats the collection as immutable, so callers wanting
// indexes in the output build them before dumping.
type TableOutputOptions uint32

func (f TableOutputOptions) Contains(bits TableOutputOptions) bool { return flagContains(f, bits) }
func (f *TableOutputOptions) Insert(bits TableOutputOptions)       { flagInsert(f, bits) }
func (f *TableOutputOptions) Remove(bits TableOutputOptions)       { flagRemove(f, bits) }
func (f TableOutputOptions) Bits() RawFlags                        { return RawFlags(f) }
func (f TableOutputOptions) IsValid() bool                         { return f == 0 }

// TreeSequenceFlags modifies tree-sequence construction.
type TreeSequenceFlags uint32

const (
	// TSBuildIndexes builds the edge indexes if they are not present.
	TSBuildIndexes TreeSequenceFlags = 1 << iota

	treeSequenceFlagsAll = TreeSequenceFlags(1<<iota) - 1
)

func (f TreeSequenceFlags) Contains(bits TreeSequenceFlags) bool { return flagContains(f, bits) }
func (f *TreeSequenceFlags) Insert(bits TreeSequenceFlags)       { flagInsert(f, bits) }
func (f *TreeSequenceFlags) Remove(bits TreeSequenceFlags)       { flagRemove(f, bits) }
func (f TreeSequenceFlags) Bits() RawFlags                       { return RawFlags(f) }
func (f TreeSequenceFlags) IsValid() bool                        { return f&^treeSequenceFlagsAll == 0 }

// TableIntegrityCheckFlags selects which checks CheckIntegrity performs on
// top of its unconditional reference-range checks.
type TableIntegrityCheckFlags uint32

const (
	// CheckEdgeOrdering checks that edges are ordered.
	CheckEdgeOrdering TableIntegrityCheckFlags = 1 << iota
	// CheckSiteOrdering checks that site positions are ordered.
	CheckSiteOrdering
	// CheckSiteDuplicates checks for duplicated site positions.
	CheckSiteDuplicates
	// CheckMutationOrdering checks that mutations are ordered.
	CheckMutationOrdering
	// CheckIndividualOrdering checks that individual parents precede
	// their children.
	CheckIndividualOrdering
	// CheckMigrationOrdering checks that migrations are ordered by time.
	CheckMigrationOrdering
	// CheckIndexes checks that the edge indexes are present and valid.
	CheckIndexes
	// CheckTrees enables all of the preceding checks.
	CheckTrees

	tableIntegrityCheckFlagsAll = TableIntegrityCheckFlags(1<<iota) - 1
)

func (f TableIntegrityCheckFlags) Contains(bits TableIntegrityCheckFlags) bool {
	return flagContains(f, bits)
}
func (f *TableIntegrityCheckFlags) Insert(bits TableIntegrityCheckFlags) { flagInsert(f, bits) }
func (f *TableIntegrityCheckFlags) Remove(bits TableIntegrityCheckFlags) { flagRemove(f, bits) }
func (f TableIntegrityCheckFlags) Bits() RawFlags                        { return RawFlags(f) }
func (f TableIntegrityCheckFlags) IsValid() bool {
	return f&^tableIntegrityCheckFlagsAll == 0
}

// NodeFlags is the per-row flags column of the node table. Only
// NodeIsSample is defined here; callers may set arbitrary additional bits
// in the upper positions, and this layer never validates them.
type NodeFlags uint32

const (
	// NodeIsSample marks a node as a sample.
	NodeIsSample NodeFlags = 1 << iota
)

// NodeFlagsFromRaw reinterprets any bit pattern as node flags. No
// validation is performed; user-defined bits belong in the upper 16 bits.
func NodeFlagsFromRaw(raw RawFlags) NodeFlags { return NodeFlags(raw) }

// SampleNodeFlags returns flags with NodeIsSample set.
func SampleNodeFlags() NodeFlags { return NodeIsSample }

func (f NodeFlags) Contains(bits NodeFlags) bool { return flagContains(f, bits) }
func (f *NodeFlags) Insert(bits NodeFlags)       { flagInsert(f, bits) }
func (f *NodeFlags) Remove(bits NodeFlags)       { flagRemove(f, bits) }
func (f NodeFlags) Bits() RawFlags               { return RawFlags(f) }

// IsSample reports whether NodeIsSample is set.
func (f NodeFlags) IsSample() bool { return f.Contains(NodeIsSample) }

// IsValid always returns true: node flags can carry user-defined bits,
// and upholding their meaning is the caller's contract, not ours.
func (f NodeFlags) IsValid() bool { return true }

// IndividualFlags is the per-row flags column of the individual table.
// No bits are defined here; all bits are available to callers, and this
// layer never validates them.
type IndividualFlags uint32

// IndividualFlagsFromRaw reinterprets any bit pattern as individual flags.
// No validation is performed.
func IndividualFlagsFromRaw(raw RawFlags) IndividualFlags { return IndividualFlags(raw) }

func (f IndividualFlags) Contains(bits IndividualFlags) bool { return flagContains(f, bits) }
func (f *IndividualFlags) Insert(bits IndividualFlags)       { flagInsert(f, bits) }
func (f *IndividualFlags) Remove(bits IndividualFlags)       { flagRemove(f, bits) }
func (f IndividualFlags) Bits() RawFlags                     { return RawFlags(f) }

// IsValid always returns true, for the same reason as NodeFlags.IsValid.
func (f IndividualFlags) IsValid() bool { return true }
