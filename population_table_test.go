package treeseq

import (
	"errors"
	"reflect"
	"testing"
)

type popMeta struct {
	Name string `msgpack:"n"`
}

func TestPopulationTableScenario(t *testing.T) {
	var populations PopulationTable

	deepEqual(t, populations.NumRows(), 0)

	id := populations.AddRow()
	deepEqual(t, id, PopulationID(0))
	deepEqual(t, populations.NumRows(), 1)

	m := popMeta{Name: "YRB"}
	id2, err := populations.AddRowWithMetadata(m)
	if err != nil {
		t.Fatalf("AddRowWithMetadata failed: %v", err)
	}
	deepEqual(t, id2, PopulationID(1))
	deepEqual(t, populations.NumRows(), 2)

	decoded, err := Metadata[popMeta](populations.View(), id2)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	isnonnil(t, decoded)
	deepEqual(t, *decoded, m)

	// Row 0 has no metadata: not-found, not an error.
	none, err := Metadata[popMeta](populations.View(), id)
	if err != nil {
		t.Fatalf("Metadata of metadata-less row errored: %v", err)
	}
	isnil(t, none)

	if _, ok := populations.Row(5); ok {
		t.Errorf("Row(5) produced a row in a 2-row table")
	}
	if _, ok := populations.Row(-1); ok {
		t.Errorf("Row(-1) produced a row")
	}

	populations.Clear(0)
	deepEqual(t, populations.NumRows(), 0)
	if _, ok := populations.Row(0); ok {
		t.Errorf("Row(0) produced a row after Clear")
	}
	if _, ok := populations.Iter().Next(); ok {
		t.Errorf("Iter produced a row after Clear")
	}
}

func TestPopulationTableIDsAreSequential(t *testing.T) {
	var populations PopulationTable
	const n = 100
	for i := 0; i < n; i++ {
		deepEqual(t, populations.AddRow(), PopulationID(i))
	}
	deepEqual(t, populations.NumRows(), n)
}

func TestPopulationTableIter(t *testing.T) {
	var populations PopulationTable
	populations.AddRow()
	must(populations.AddRowWithMetadata(popMeta{Name: "a"}))
	populations.AddRow()

	it := populations.Iter()
	var count int
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		deepEqual(t, row.ID, PopulationID(count))
		want, wantOK := populations.Row(PopulationID(count))
		deepEqual(t, wantOK, true)
		deepEqual(t, row, want)
		count++
	}
	deepEqual(t, count, populations.NumRows())

	// Each Iter call yields a fresh cursor.
	row, ok := populations.Iter().Next()
	deepEqual(t, ok, true)
	deepEqual(t, row.ID, PopulationID(0))
}

func TestPopulationTableOwnedAsMetadataSource(t *testing.T) {
	var populations PopulationTable
	id := must(populations.AddRowWithMetadata(popMeta{Name: "CEU"}))

	decoded, err := Metadata[popMeta](&populations, id)
	if err != nil {
		t.Fatalf("Metadata via owned table failed: %v", err)
	}
	deepEqual(t, *decoded, popMeta{Name: "CEU"})
}

func TestPopulationTableEncodeFailureIsAtomic(t *testing.T) {
	var populations PopulationTable
	populations.AddRow()
	populations.SetMetadataCodec(failingCodec{})

	_, err := populations.AddRowWithMetadata(popMeta{Name: "x"})
	if err == nil {
		t.Fatalf("AddRowWithMetadata succeeded with a failing codec")
	}
	var merr *MetadataError
	if !errors.As(err, &merr) {
		t.Fatalf("got %T, wanted *MetadataError", err)
	}
	deepEqual(t, merr.Table, "populations")
	deepEqual(t, populations.NumRows(), 1)
}

func TestPopulationTableDecodeFailure(t *testing.T) {
	var populations PopulationTable
	id := must(populations.AddRowWithMetadata(popMeta{Name: "YRB"}))
	ok := must(populations.AddRowWithMetadata(popMeta{Name: "CEU"}))

	// A struct blob does not decode into an int.
	_, err := Metadata[int](populations.View(), id)
	var merr *MetadataError
	if !errors.As(err, &merr) {
		t.Fatalf("got %v, wanted *MetadataError", err)
	}
	deepEqual(t, merr.Row, int32(id))

	// The failure is attached to that row only; others still decode.
	decoded, err := Metadata[popMeta](populations.View(), ok)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	deepEqual(t, *decoded, popMeta{Name: "CEU"})
}

func TestPopulationTableRawMetadataPresence(t *testing.T) {
	var populations PopulationTable
	bare := populations.AddRow()
	tagged := must(populations.AddRowWithMetadata(popMeta{Name: "x"}))

	if _, ok := populations.RawMetadata(bare); ok {
		t.Errorf("RawMetadata reported metadata on a bare row")
	}
	raw, ok := populations.RawMetadata(tagged)
	deepEqual(t, ok, true)
	if len(raw) == 0 {
		t.Errorf("RawMetadata returned empty bytes for encoded metadata")
	}
	if _, ok := populations.RawMetadata(PopulationID(99)); ok {
		t.Errorf("RawMetadata reported metadata out of range")
	}
}

type failingCodec struct{}

func (failingCodec) Name() string                            { return "failing" }
func (failingCodec) EncodeMetadata(v any) ([]byte, error)    { return nil, errors.New("boom") }
func (failingCodec) DecodeMetadata(data []byte, v any) error { return errors.New("boom") }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isnil[T any, P ~*T](t testing.TB, a P) {
	if a != nil {
		t.Helper()
		t.Errorf("** got &%v, wanted nil", *a)
	}
}

func isnonnil[T any](t testing.TB, a *T) {
	if a == nil {
		t.Helper()
		t.Errorf("** got nil %T, wanted non-nil", a)
	}
}
