package treeseq

import (
	"bytes"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// raggedColumn stores one variable-length byte value per row in a single
// backing buffer. offsets has nrows+1 entries once the column is non-empty;
// row i occupies data[offsets[i]:offsets[i+1]].
type raggedColumn struct {
	data    []byte
	offsets []uint64
}

func (c *raggedColumn) numRows() int32 {
	if len(c.offsets) == 0 {
		return 0
	}
	return int32(len(c.offsets) - 1)
}

func (c *raggedColumn) appendRow(b []byte) {
	if c.offsets == nil {
		c.offsets = []uint64{0}
	}
	c.data = append(c.data, b...)
	c.offsets = append(c.offsets, uint64(len(c.data)))
}

func (c *raggedColumn) at(pos int32) []byte {
	return c.data[c.offsets[pos]:c.offsets[pos+1]]
}

func (c *raggedColumn) clear() {
	c.data = c.data[:0]
	c.offsets = c.offsets[:0]
}

func (c *raggedColumn) equal(other *raggedColumn) bool {
	if c.numRows() != other.numRows() {
		return false
	}
	for i := int32(0); i < c.numRows(); i++ {
		if !bytes.Equal(c.at(i), other.at(i)) {
			return false
		}
	}
	return true
}

// raggedVec is the typed counterpart of raggedColumn, used for per-row
// slices of fixed-width values (individual locations and parents).
type raggedVec[T comparable] struct {
	data    []T
	offsets []uint64
}

func (c *raggedVec[T]) appendRow(v []T) {
	if c.offsets == nil {
		c.offsets = []uint64{0}
	}
	c.data = append(c.data, v...)
	c.offsets = append(c.offsets, uint64(len(c.data)))
}

func (c *raggedVec[T]) at(pos int32) []T {
	return c.data[c.offsets[pos]:c.offsets[pos+1]]
}

func (c *raggedVec[T]) clear() {
	c.data = c.data[:0]
	c.offsets = c.offsets[:0]
}

func (c *raggedVec[T]) equal(other *raggedVec[T]) bool {
	return slices.Equal(c.data, other.data) && slices.Equal(c.offsets, other.offsets)
}

var emptyBytes = []byte{}

// metadataColumn is a raggedColumn plus an explicit presence set, so that
// a row with no metadata stays distinct from a row with an empty blob.
type metadataColumn struct {
	raw     raggedColumn
	present roaring.Bitmap
	schema  string
}

// appendRow stores meta for the next row; nil means no metadata.
func (c *metadataColumn) appendRow(meta []byte) {
	if meta != nil {
		c.present.Add(uint32(c.raw.numRows()))
	}
	c.raw.appendRow(meta)
}

// at returns the metadata of a row: nil when absent, a non-nil (possibly
// empty) slice when present. pos must be in range.
func (c *metadataColumn) at(pos int32) []byte {
	if !c.present.Contains(uint32(pos)) {
		return nil
	}
	if b := c.raw.at(pos); len(b) > 0 {
		return b
	}
	return emptyBytes
}

func (c *metadataColumn) clear(resetSchema bool) {
	c.raw.clear()
	c.present.Clear()
	if resetSchema {
		c.schema = ""
	}
}

func (c *metadataColumn) equal(other *metadataColumn) bool {
	return c.raw.equal(&other.raw) &&
		c.present.Equals(&other.present) &&
		c.schema == other.schema
}

func (c *metadataColumn) byteSize() int {
	return len(c.raw.data) + 8*len(c.raw.offsets)
}
