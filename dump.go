package treeseq

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

// Dump and Load persist a table collection through Bolt: one bucket per
// table, one value per column, fixed-width columns encoded with msgpack.
// The metadata presence set is stored in roaring's own binary format.

const collectionBucket = "collection"

// Dump writes the collection into a Bolt file at path, replacing any
// collection already stored there. Dump treats the collection as immutable:
// if indexes are wanted in the output, build them before dumping.
func (tc *TableCollection) Dump(path string, opts TableOutputOptions) error {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return fileErrf(path, "", err)
	}
	defer db.Close()

	err = db.Update(func(btx *bbolt.Tx) error {
		cb, err := recreateBucket(btx, collectionBucket)
		if err != nil {
			return fileErrf(path, collectionBucket, err)
		}
		if err := putPacked(cb, "sequence_length", tc.sequenceLength); err != nil {
			return fileErrf(path, collectionBucket, err)
		}
		if tc.metadata != nil {
			if err := cb.Put([]byte("metadata"), tc.metadata); err != nil {
				return fileErrf(path, collectionBucket, err)
			}
		}
		if err := cb.Put([]byte("metadata_schema"), []byte(tc.metadataSchema)); err != nil {
			return fileErrf(path, collectionBucket, err)
		}

		for _, td := range tc.tableDumpers() {
			b, err := recreateBucket(btx, td.name)
			if err != nil {
				return fileErrf(path, td.name, err)
			}
			if err := td.dump(b); err != nil {
				return fileErrf(path, td.name, err)
			}
		}

		if btx.Bucket([]byte("indexes")) != nil {
			if err := btx.DeleteBucket([]byte("indexes")); err != nil {
				return fileErrf(path, "indexes", err)
			}
		}
		if tc.indexes != nil {
			b, err := btx.CreateBucket([]byte("indexes"))
			if err != nil {
				return fileErrf(path, "indexes", err)
			}
			if err := putPacked(b, "insertion", tc.indexes.insertion); err != nil {
				return fileErrf(path, "indexes", err)
			}
			if err := putPacked(b, "removal", tc.indexes.removal); err != nil {
				return fileErrf(path, "indexes", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Debug("dumped table collection", "path", path,
		"nodes", tc.nodes.NumRows(), "edges", tc.edges.NumRows(),
		"indexed", tc.indexes != nil)
	return nil
}

// Load reads a table collection from a Bolt file written by Dump. Metadata
// codecs are resolved by the name recorded per table; user codecs must be
// registered before calling Load.
func Load(path string) (*TableCollection, error) {
	db, err := bbolt.Open(path, 0o644, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fileErrf(path, "", err)
	}
	defer db.Close()

	tc := NewTableCollection(0)
	err = db.View(func(btx *bbolt.Tx) error {
		cb := btx.Bucket([]byte(collectionBucket))
		if cb == nil {
			return fileErrf(path, "", fmt.Errorf("not a table collection file"))
		}
		if err := getPacked(cb, "sequence_length", &tc.sequenceLength); err != nil {
			return fileErrf(path, collectionBucket, err)
		}
		tc.metadata = bytes.Clone(cb.Get([]byte("metadata")))
		tc.metadataSchema = string(cb.Get([]byte("metadata_schema")))

		for _, td := range tc.tableDumpers() {
			b := btx.Bucket([]byte(td.name))
			if b == nil {
				continue // absent table means empty table
			}
			if err := td.load(b); err != nil {
				return fileErrf(path, td.name, err)
			}
		}

		if b := btx.Bucket([]byte("indexes")); b != nil {
			var idx edgeIndexes
			if err := getPacked(b, "insertion", &idx.insertion); err != nil {
				return fileErrf(path, "indexes", err)
			}
			if err := getPacked(b, "removal", &idx.removal); err != nil {
				return fileErrf(path, "indexes", err)
			}
			tc.indexes = &idx
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded table collection", "path", path,
		"nodes", tc.nodes.NumRows(), "edges", tc.edges.NumRows(),
		"indexed", tc.indexes != nil)
	return tc, nil
}

type tableDumper struct {
	name string
	dump func(b *bbolt.Bucket) error
	load func(b *bbolt.Bucket) error
}

func (tc *TableCollection) tableDumpers() []tableDumper {
	return []tableDumper{
		{"nodes", tc.nodes.dumpInto, tc.nodes.loadFrom},
		{"edges", tc.edges.dumpInto, tc.edges.loadFrom},
		{"sites", tc.sites.dumpInto, tc.sites.loadFrom},
		{"mutations", tc.mutations.dumpInto, tc.mutations.loadFrom},
		{"individuals", tc.individuals.dumpInto, tc.individuals.loadFrom},
		{"populations", tc.populations.dumpInto, tc.populations.loadFrom},
		{"migrations", tc.migrations.dumpInto, tc.migrations.loadFrom},
		{"provenances", tc.provenances.dumpInto, tc.provenances.loadFrom},
	}
}

func recreateBucket(btx *bbolt.Tx, name string) (*bbolt.Bucket, error) {
	raw := []byte(name)
	if btx.Bucket(raw) != nil {
		if err := btx.DeleteBucket(raw); err != nil {
			return nil, err
		}
	}
	return btx.CreateBucket(raw)
}

func putPacked(b *bbolt.Bucket, key string, v any) error {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Put([]byte(key), raw)
}

// getPacked leaves v untouched when the key is absent.
func getPacked(b *bbolt.Bucket, key string, v any) error {
	raw := b.Get([]byte(key))
	if raw == nil {
		return nil
	}
	if err := msgpack.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func dumpRagged(b *bbolt.Bucket, prefix string, c *raggedColumn) error {
	if err := b.Put([]byte(prefix+"_data"), c.data); err != nil {
		return err
	}
	return putPacked(b, prefix+"_offsets", c.offsets)
}

func loadRagged(b *bbolt.Bucket, prefix string, c *raggedColumn) error {
	c.data = bytes.Clone(b.Get([]byte(prefix + "_data")))
	return getPacked(b, prefix+"_offsets", &c.offsets)
}

func (c *metadataColumn) dumpInto(b *bbolt.Bucket, codec MetadataCodec) error {
	if err := dumpRagged(b, "metadata", &c.raw); err != nil {
		return err
	}
	present, err := c.present.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode metadata_present: %w", err)
	}
	if err := b.Put([]byte("metadata_present"), present); err != nil {
		return err
	}
	if err := b.Put([]byte("metadata_schema"), []byte(c.schema)); err != nil {
		return err
	}
	return b.Put([]byte("metadata_codec"), []byte(codec.Name()))
}

func (c *metadataColumn) loadFrom(b *bbolt.Bucket) (MetadataCodec, error) {
	if err := loadRagged(b, "metadata", &c.raw); err != nil {
		return nil, err
	}
	if raw := b.Get([]byte("metadata_present")); raw != nil {
		if err := c.present.UnmarshalBinary(bytes.Clone(raw)); err != nil {
			return nil, fmt.Errorf("decode metadata_present: %w", err)
		}
	}
	c.schema = string(b.Get([]byte("metadata_schema")))
	name := string(b.Get([]byte("metadata_codec")))
	if name == "" {
		return nil, nil // default codec
	}
	codec, ok := MetadataCodecByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown metadata codec %q", name)
	}
	return codec, nil
}

func (t *NodeTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "flags", t.cols.flags); err != nil {
		return err
	}
	if err := putPacked(b, "time", t.cols.time); err != nil {
		return err
	}
	if err := putPacked(b, "population", t.cols.population); err != nil {
		return err
	}
	if err := putPacked(b, "individual", t.cols.individual); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *NodeTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "flags", &t.cols.flags); err != nil {
		return err
	}
	if err := getPacked(b, "time", &t.cols.time); err != nil {
		return err
	}
	if err := getPacked(b, "population", &t.cols.population); err != nil {
		return err
	}
	if err := getPacked(b, "individual", &t.cols.individual); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *EdgeTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "left", t.cols.left); err != nil {
		return err
	}
	if err := putPacked(b, "right", t.cols.right); err != nil {
		return err
	}
	if err := putPacked(b, "parent", t.cols.parent); err != nil {
		return err
	}
	if err := putPacked(b, "child", t.cols.child); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *EdgeTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "left", &t.cols.left); err != nil {
		return err
	}
	if err := getPacked(b, "right", &t.cols.right); err != nil {
		return err
	}
	if err := getPacked(b, "parent", &t.cols.parent); err != nil {
		return err
	}
	if err := getPacked(b, "child", &t.cols.child); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *SiteTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "position", t.cols.position); err != nil {
		return err
	}
	if err := dumpRagged(b, "ancestral_state", &t.cols.ancestral); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *SiteTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "position", &t.cols.position); err != nil {
		return err
	}
	if err := loadRagged(b, "ancestral_state", &t.cols.ancestral); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *MutationTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "site", t.cols.site); err != nil {
		return err
	}
	if err := putPacked(b, "node", t.cols.node); err != nil {
		return err
	}
	if err := putPacked(b, "parent", t.cols.parent); err != nil {
		return err
	}
	if err := putPacked(b, "time", t.cols.time); err != nil {
		return err
	}
	if err := dumpRagged(b, "derived_state", &t.cols.derived); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *MutationTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "site", &t.cols.site); err != nil {
		return err
	}
	if err := getPacked(b, "node", &t.cols.node); err != nil {
		return err
	}
	if err := getPacked(b, "parent", &t.cols.parent); err != nil {
		return err
	}
	if err := getPacked(b, "time", &t.cols.time); err != nil {
		return err
	}
	if err := loadRagged(b, "derived_state", &t.cols.derived); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *IndividualTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "flags", t.cols.flags); err != nil {
		return err
	}
	if err := putPacked(b, "location", t.cols.location.data); err != nil {
		return err
	}
	if err := putPacked(b, "location_offsets", t.cols.location.offsets); err != nil {
		return err
	}
	if err := putPacked(b, "parents", t.cols.parents.data); err != nil {
		return err
	}
	if err := putPacked(b, "parents_offsets", t.cols.parents.offsets); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *IndividualTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "flags", &t.cols.flags); err != nil {
		return err
	}
	if err := getPacked(b, "location", &t.cols.location.data); err != nil {
		return err
	}
	if err := getPacked(b, "location_offsets", &t.cols.location.offsets); err != nil {
		return err
	}
	if err := getPacked(b, "parents", &t.cols.parents.data); err != nil {
		return err
	}
	if err := getPacked(b, "parents_offsets", &t.cols.parents.offsets); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *PopulationTable) dumpInto(b *bbolt.Bucket) error {
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *PopulationTable) loadFrom(b *bbolt.Bucket) error {
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *MigrationTable) dumpInto(b *bbolt.Bucket) error {
	if err := putPacked(b, "left", t.cols.left); err != nil {
		return err
	}
	if err := putPacked(b, "right", t.cols.right); err != nil {
		return err
	}
	if err := putPacked(b, "node", t.cols.node); err != nil {
		return err
	}
	if err := putPacked(b, "source", t.cols.source); err != nil {
		return err
	}
	if err := putPacked(b, "dest", t.cols.dest); err != nil {
		return err
	}
	if err := putPacked(b, "time", t.cols.time); err != nil {
		return err
	}
	return t.cols.meta.dumpInto(b, t.MetadataCodec())
}

func (t *MigrationTable) loadFrom(b *bbolt.Bucket) error {
	if err := getPacked(b, "left", &t.cols.left); err != nil {
		return err
	}
	if err := getPacked(b, "right", &t.cols.right); err != nil {
		return err
	}
	if err := getPacked(b, "node", &t.cols.node); err != nil {
		return err
	}
	if err := getPacked(b, "source", &t.cols.source); err != nil {
		return err
	}
	if err := getPacked(b, "dest", &t.cols.dest); err != nil {
		return err
	}
	if err := getPacked(b, "time", &t.cols.time); err != nil {
		return err
	}
	codec, err := t.cols.meta.loadFrom(b)
	t.codec = codec
	return err
}

func (t *ProvenanceTable) dumpInto(b *bbolt.Bucket) error {
	if err := dumpRagged(b, "timestamp", &t.cols.timestamp); err != nil {
		return err
	}
	return dumpRagged(b, "record", &t.cols.record)
}

func (t *ProvenanceTable) loadFrom(b *bbolt.Bucket) error {
	if err := loadRagged(b, "timestamp", &t.cols.timestamp); err != nil {
		return err
	}
	return loadRagged(b, "record", &t.cols.record)
}
