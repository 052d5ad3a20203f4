package treeseq

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	tc := buildCollection(t)
	tc.SetRawMetadata([]byte("top-level"))
	tc.SetMetadataSchema("top schema")
	tc.Nodes().SetMetadataSchema("node schema")

	path := filepath.Join(t.TempDir(), "collection.db")
	ensure(tc.Dump(path, 0))

	back := must(Load(path))
	deepEqual(t, back.SequenceLength(), 10.0)
	deepEqual(t, tc.Equals(back, 0), true)
	deepEqual(t, back.Nodes().MetadataSchema(), "node schema")
	deepEqual(t, string(back.RawMetadata()), "top-level")
	deepEqual(t, back.MetadataSchema(), "top schema")
	deepEqual(t, back.HasIndex(), false)
}

func TestDumpLoadIndexes(t *testing.T) {
	tc := buildCollection(t)
	ensure(tc.BuildIndex())

	path := filepath.Join(t.TempDir(), "indexed.db")
	ensure(tc.Dump(path, 0))

	back := must(Load(path))
	deepEqual(t, back.HasIndex(), true)
	ensure(back.CheckIntegrity(CheckIndexes))
	deepEqual(t, back.indexes.insertion, tc.indexes.insertion)
	deepEqual(t, back.indexes.removal, tc.indexes.removal)
}

func TestDumpLoadMetadataCodec(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Populations().SetMetadataCodec(JSONCodec{})
	must(tc.Populations().AddRowWithMetadata(popMeta{Name: "json pop"}))

	path := filepath.Join(t.TempDir(), "codec.db")
	ensure(tc.Dump(path, 0))

	back := must(Load(path))
	deepEqual(t, back.Populations().MetadataCodec().Name(), "json")
	meta := must(Metadata[popMeta](back.Populations().View(), PopulationID(0)))
	isnonnil(t, meta)
	deepEqual(t, meta.Name, "json pop")
}

func TestDumpLoadMetadataPresence(t *testing.T) {
	tc := NewTableCollection(10)
	tc.Populations().AddRow() // absent
	// present
	must(tc.Populations().AddRowWithMetadata(struct{}{}))

	path := filepath.Join(t.TempDir(), "presence.db")
	ensure(tc.Dump(path, 0))

	back := must(Load(path))
	_, ok := back.Populations().RawMetadata(PopulationID(0))
	deepEqual(t, ok, false)
	_, ok = back.Populations().RawMetadata(PopulationID(1))
	deepEqual(t, ok, true)
}

func TestDumpOverwritesExistingCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewrite.db")

	big := buildCollection(t)
	ensure(big.BuildIndex())
	ensure(big.Dump(path, 0))

	small := NewTableCollection(5)
	small.Nodes().AddRow(SampleNodeFlags(), 0, NullID, NullID)
	ensure(small.Dump(path, 0))

	back := must(Load(path))
	deepEqual(t, back.SequenceLength(), 5.0)
	deepEqual(t, back.Nodes().NumRows(), 1)
	deepEqual(t, back.Edges().NumRows(), 0)
	deepEqual(t, back.HasIndex(), false)
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.db")
	ensure(os.WriteFile(path, []byte("not a bolt file"), 0o644))

	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load accepted a non-collection file")
	}
	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("got %T (%v), wanted *FileError", err, err)
	}
	deepEqual(t, ferr.Path, path)
}
