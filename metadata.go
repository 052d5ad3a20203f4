package treeseq

import (
	"bytes"
	"encoding/json"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vmihailenco/msgpack/v5"
)

// MetadataCodec encodes and decodes per-row metadata blobs. Implementations
// must be safe for concurrent use; the built-in codecs are stateless.
//
// A codec is never invoked on absent metadata: out-of-range rows and rows
// with no stored metadata short-circuit to a not-found result.
type MetadataCodec interface {
	EncodeMetadata(v any) ([]byte, error)
	DecodeMetadata(data []byte, v any) error
	Name() string
}

// MsgPackCodec is the default metadata codec.
type MsgPackCodec struct{}

func (MsgPackCodec) Name() string { return "msgpack" }

func (MsgPackCodec) EncodeMetadata(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (MsgPackCodec) DecodeMetadata(data []byte, v any) error {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	err := dec.Decode(v)
	msgpack.PutDecoder(dec)
	return err
}

// JSONCodec stores metadata as JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) EncodeMetadata(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) DecodeMetadata(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// DefaultMetadataCodec is used by tables that were not given a codec
// explicitly.
var DefaultMetadataCodec MetadataCodec = MsgPackCodec{}

var codecRegistry = xsync.NewMapOf[string, MetadataCodec]()

func init() {
	RegisterMetadataCodec(MsgPackCodec{})
	RegisterMetadataCodec(JSONCodec{})
}

// RegisterMetadataCodec makes a codec resolvable by name, replacing any
// codec previously registered under the same name. Loaded files record the
// codec name per table, so user codecs must be registered before Load.
func RegisterMetadataCodec(c MetadataCodec) {
	codecRegistry.Store(c.Name(), c)
}

// MetadataCodecByName returns a registered codec.
func MetadataCodecByName(name string) (MetadataCodec, bool) {
	return codecRegistry.Load(name)
}

// MetadataSource is the raw-metadata capability shared by the borrowed
// views and owned tables of every kind that carries a metadata column.
type MetadataSource[ID rowID] interface {
	// RawMetadata returns the stored metadata bytes of a row.
	// It returns (nil, false) when id is out of range or the row has no
	// stored metadata. Stored-but-empty metadata returns (non-nil, true).
	RawMetadata(id ID) ([]byte, bool)
	// MetadataCodec returns the codec used to decode this table's blobs.
	MetadataCodec() MetadataCodec
	// Name returns the table kind name, for error context.
	Name() string
}

func resolveCodec(c MetadataCodec) MetadataCodec {
	if c == nil {
		return DefaultMetadataCodec
	}
	return c
}

// encodeMetadata encodes meta on the insertion path. Failure carries the
// table name but no row id: no row has been assigned yet.
func encodeMetadata(table string, codec MetadataCodec, meta any) ([]byte, error) {
	raw, err := codec.EncodeMetadata(meta)
	if err != nil {
		return nil, metadataErrf(table, -1, "encode", err)
	}
	if raw == nil {
		raw = emptyBytes
	}
	return raw, nil
}

// Metadata decodes the metadata of row id into a fresh T.
//
// It returns (nil, nil) when the row does not exist or carries no metadata;
// this is a not-found result, not an error. When bytes are present but fail
// to decode, it returns a *MetadataError wrapping the codec failure.
func Metadata[T any, ID rowID](src MetadataSource[ID], id ID) (*T, error) {
	raw, ok := src.RawMetadata(id)
	if !ok {
		return nil, nil
	}
	value := new(T)
	if err := src.MetadataCodec().DecodeMetadata(raw, value); err != nil {
		return nil, metadataErrf(src.Name(), int32(id), "decode", err)
	}
	return value, nil
}
