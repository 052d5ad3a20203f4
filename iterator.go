package treeseq

// rowSource is the capability TableIterator is parameterized over: lazily
// materialize the row at a cursor position. Borrowed views and owned tables
// of every kind satisfy it, so one iterator serves both.
type rowSource[R any] interface {
	rowAt(pos int32) (R, bool)
}

// TableIterator produces table rows lazily, in ascending id order.
//
// Each call to a table's Iter method yields a fresh iterator starting at
// row 0. Next advances the cursor unconditionally and reports false once
// the cursor passes the last row; ids are dense, so there are no interior
// holes to skip.
type TableIterator[R any] struct {
	src rowSource[R]
	pos int32
}

func newTableIterator[R any](src rowSource[R]) *TableIterator[R] {
	return &TableIterator[R]{src: src}
}

// Next returns the row at the current cursor position and advances.
func (it *TableIterator[R]) Next() (R, bool) {
	row, ok := it.src.rowAt(it.pos)
	it.pos++
	return row, ok
}
