package records

import (
	"math"
	"sort"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// testBundles returns bundles covering extreme and edge values
func testBundles() map[string]TestBundle {
	return map[string]TestBundle{
		"Zero": {},
		"Max": {
			Required: RequiredFields{
				BoolValue:   true,
				U8Value:     math.MaxUint8,
				U16Value:    math.MaxUint16,
				U32Value:    math.MaxUint32,
				U64Value:    math.MaxUint64,
				S8Value:     math.MaxInt8,
				S16Value:    math.MaxInt16,
				S32Value:    math.MaxInt32,
				S64Value:    math.MaxInt64,
				F32Value:    math.MaxFloat32,
				F64Value:    math.MaxFloat64,
				StringValue: "test",
				BytesValue:  []byte("test"),
				ObjectValue: Thing{Value: "test"},
			},
			Optional: OptionalFields{
				BoolValue:   pointer.ToBool(true),
				U8Value:     pointer.ToUint8(math.MaxUint8),
				U16Value:    pointer.ToUint16(math.MaxUint16),
				U32Value:    pointer.ToUint32(math.MaxUint32),
				U64Value:    pointer.ToUint64(math.MaxUint64),
				S8Value:     pointer.ToInt8(math.MaxInt8),
				S16Value:    pointer.ToInt16(math.MaxInt16),
				S32Value:    pointer.ToInt32(math.MaxInt32),
				S64Value:    pointer.ToInt64(math.MaxInt64),
				F32Value:    pointer.ToFloat32(math.MaxFloat32),
				F64Value:    pointer.ToFloat64(math.MaxFloat64),
				StringValue: pointer.ToString("test"),
				BytesValue:  []byte("test"),
				ObjectValue: &Thing{Value: "test"},
			},
			Maps: MapFields{
				MapStringPrimative: map[uint32]string{1234: "1234", 5678: "5678"},
				MapU64Primative:    map[uint32]uint64{1234: 1234, 5678: math.MaxUint64},
			},
			Lists: ListFields{
				ListStrings:         []string{"string1", "string2"},
				ListU64s:            []uint64{0, 1, math.MaxUint64},
				ListObjects:         []Thing{{Value: "Object1"}, {Value: "Object2"}},
				ListObjectsOptional: []*Thing{{Value: "Object1"}, nil, {Value: "Object2"}},
			},
		},
		"Min": {
			Required: RequiredFields{
				S8Value:     math.MinInt8,
				S16Value:    math.MinInt16,
				S32Value:    math.MinInt32,
				S64Value:    math.MinInt64,
				F32Value:    -math.MaxFloat32,
				F64Value:    math.SmallestNonzeroFloat64,
				StringValue: "",
				BytesValue:  []byte{},
			},
			Optional: OptionalFields{
				S8Value:     pointer.ToInt8(math.MinInt8),
				S64Value:    pointer.ToInt64(math.MinInt64),
				StringValue: pointer.ToString(""),
				BytesValue:  []byte{},
				ObjectValue: &Thing{},
			},
		},
		"EmptyCollections": {
			Maps: MapFields{
				MapStringPrimative: map[uint32]string{},
				MapU64Primative:    map[uint32]uint64{},
			},
			Lists: ListFields{
				ListStrings:         []string{},
				ListU64s:            []uint64{},
				ListObjects:         []Thing{},
				ListObjectsOptional: []*Thing{},
			},
		},
	}
}

func TestBundleRoundTrip(t *testing.T) {
	for name, bundle := range testBundles() {
		t.Run(name, func(t *testing.T) {
			data, err := wire.Encode(bundle)
			require.NoError(t, err)

			var result TestBundle
			require.NoError(t, wire.Decode(data, &result))
			assert.Equal(t, bundle, result)
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	bundle := testBundles()["Max"]

	t.Run("RequiredFields", func(t *testing.T) {
		data, err := wire.Encode(bundle.Required)
		require.NoError(t, err)
		var result RequiredFields
		require.NoError(t, wire.Decode(data, &result))
		assert.Equal(t, bundle.Required, result)
	})

	t.Run("OptionalFieldsAbsent", func(t *testing.T) {
		data, err := wire.Encode(OptionalFields{})
		require.NoError(t, err)
		var result OptionalFields
		require.NoError(t, wire.Decode(data, &result))
		assert.Equal(t, OptionalFields{}, result)
	})

	t.Run("MapFields", func(t *testing.T) {
		data, err := wire.Encode(bundle.Maps)
		require.NoError(t, err)
		var result MapFields
		require.NoError(t, wire.Decode(data, &result))
		assert.Equal(t, bundle.Maps, result)
	})

	t.Run("ListFields", func(t *testing.T) {
		data, err := wire.Encode(bundle.Lists)
		require.NoError(t, err)
		var result ListFields
		require.NoError(t, wire.Decode(data, &result))
		assert.Equal(t, bundle.Lists, result)
	})

	t.Run("TestFunctionArgs", func(t *testing.T) {
		args := TestFunctionArgs(bundle)
		data, err := wire.Encode(args)
		require.NoError(t, err)

		// the argument record and the bundle share their keys
		var result TestBundle
		require.NoError(t, wire.Decode(data, &result))
		assert.Equal(t, args.Bundle(), result)
	})
}

func TestWireKeys(t *testing.T) {
	data, err := wire.Encode(testBundles()["Max"])
	require.NoError(t, err)

	// values stay raw, the map records carry integer keys
	var generic map[string]map[string]msgpack.RawMessage
	require.NoError(t, wire.Decode(data, &generic))

	keysOf := func(m map[string]msgpack.RawMessage) []string {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}

	primitiveKeys := []string{
		"boolValue", "bytesValue", "f32Value", "f64Value", "objectValue",
		"s16Value", "s32Value", "s64Value", "s8Value", "stringValue",
		"u16Value", "u32Value", "u64Value", "u8Value",
	}

	require.Len(t, generic, 4)
	assert.Equal(t, primitiveKeys, keysOf(generic["required"]))
	assert.Equal(t, primitiveKeys, keysOf(generic["optional"]))
	assert.Equal(t, []string{"mapStringPrimative", "mapU64Primative"}, keysOf(generic["maps"]))
	assert.Equal(t, []string{"listObjects", "listObjectsOptional", "listStrings", "listU64s"}, keysOf(generic["lists"]))

	// bytes travel as bin, not as text
	var bytesValue interface{}
	require.NoError(t, msgpack.Unmarshal(generic["required"]["bytesValue"], &bytesValue))
	assert.IsType(t, []byte{}, bytesValue)

	// integer keys stay integers
	var mapStrings map[uint32]string
	require.NoError(t, msgpack.Unmarshal(generic["maps"]["mapStringPrimative"], &mapStrings))
	assert.Equal(t, testBundles()["Max"].Maps.MapStringPrimative, mapStrings)
}

func TestAbsentOptionalsAreWrittenAsNil(t *testing.T) {
	data, err := wire.Encode(OptionalFields{})
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, wire.Decode(data, &generic))
	require.Len(t, generic, 14)
	for key, value := range generic {
		assert.Nil(t, value, key)
	}
}

func TestUnknownKeysAreSkipped(t *testing.T) {
	data, err := wire.Encode(map[string]interface{}{
		"value":   "kept",
		"comment": "added by a newer schema",
		"nested":  map[string]interface{}{"a": 1},
	})
	require.NoError(t, err)

	var thing Thing
	require.NoError(t, wire.Decode(data, &thing))
	assert.Equal(t, Thing{Value: "kept"}, thing)
}

func TestDecodeMismatch(t *testing.T) {
	data, err := wire.Encode("not a bundle")
	require.NoError(t, err)

	var bundle TestBundle
	err = wire.Decode(data, &bundle)
	require.Error(t, err)
	assert.ErrorIs(t, err, wire.ErrDecode)

	err = wire.Decode(nil, &bundle)
	assert.ErrorIs(t, err, wire.ErrDecode)
}
