package treeseq

import "testing"

type sampleMeta struct {
	Name  string  `msgpack:"n" json:"name"`
	Score float64 `msgpack:"s" json:"score"`
}

func TestMsgPackCodecRoundTrip(t *testing.T) {
	m := sampleMeta{Name: "x", Score: 0.5}
	raw := must(MsgPackCodec{}.EncodeMetadata(m))

	var back sampleMeta
	if err := (MsgPackCodec{}).DecodeMetadata(raw, &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	deepEqual(t, back, m)
}

func TestJSONCodecRoundTrip(t *testing.T) {
	m := sampleMeta{Name: "y", Score: 1.25}
	raw := must(JSONCodec{}.EncodeMetadata(m))

	var back sampleMeta
	if err := (JSONCodec{}).DecodeMetadata(raw, &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	deepEqual(t, back, m)
}

func TestCodecRegistry(t *testing.T) {
	c, ok := MetadataCodecByName("msgpack")
	deepEqual(t, ok, true)
	deepEqual(t, c.Name(), "msgpack")

	c, ok = MetadataCodecByName("json")
	deepEqual(t, ok, true)
	deepEqual(t, c.Name(), "json")

	_, ok = MetadataCodecByName("no-such-codec")
	deepEqual(t, ok, false)

	RegisterMetadataCodec(failingCodec{})
	c, ok = MetadataCodecByName("failing")
	deepEqual(t, ok, true)
	deepEqual(t, c.Name(), "failing")
}

func TestTableUsesConfiguredCodec(t *testing.T) {
	var populations PopulationTable
	populations.SetMetadataCodec(JSONCodec{})

	id := must(populations.AddRowWithMetadata(sampleMeta{Name: "z", Score: 2}))
	raw, ok := populations.RawMetadata(id)
	deepEqual(t, ok, true)
	deepEqual(t, raw[0], byte('{')) // JSON, not msgpack

	decoded, err := Metadata[sampleMeta](populations.View(), id)
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	deepEqual(t, *decoded, sampleMeta{Name: "z", Score: 2})
}
