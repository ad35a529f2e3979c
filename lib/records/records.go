package records

// Thing is the nested object used by the other records
type Thing struct {
	Value string `msgpack:"value" json:"value"`
}

// RequiredFields holds one value per primitive kind
type RequiredFields struct {
	BoolValue   bool    `msgpack:"boolValue" json:"boolValue"`
	U8Value     uint8   `msgpack:"u8Value" json:"u8Value"`
	U16Value    uint16  `msgpack:"u16Value" json:"u16Value"`
	U32Value    uint32  `msgpack:"u32Value" json:"u32Value"`
	U64Value    uint64  `msgpack:"u64Value" json:"u64Value"`
	S8Value     int8    `msgpack:"s8Value" json:"s8Value"`
	S16Value    int16   `msgpack:"s16Value" json:"s16Value"`
	S32Value    int32   `msgpack:"s32Value" json:"s32Value"`
	S64Value    int64   `msgpack:"s64Value" json:"s64Value"`
	F32Value    float32 `msgpack:"f32Value" json:"f32Value"`
	F64Value    float64 `msgpack:"f64Value" json:"f64Value"`
	StringValue string  `msgpack:"stringValue" json:"stringValue"`
	BytesValue  []byte  `msgpack:"bytesValue" json:"bytesValue"`
	ObjectValue Thing   `msgpack:"objectValue" json:"objectValue"`
}

// OptionalFields has the shape of RequiredFields, but every field may be absent.
// Absent values are nil and are written as msgpack nil.
type OptionalFields struct {
	BoolValue   *bool    `msgpack:"boolValue" json:"boolValue"`
	U8Value     *uint8   `msgpack:"u8Value" json:"u8Value"`
	U16Value    *uint16  `msgpack:"u16Value" json:"u16Value"`
	U32Value    *uint32  `msgpack:"u32Value" json:"u32Value"`
	U64Value    *uint64  `msgpack:"u64Value" json:"u64Value"`
	S8Value     *int8    `msgpack:"s8Value" json:"s8Value"`
	S16Value    *int16   `msgpack:"s16Value" json:"s16Value"`
	S32Value    *int32   `msgpack:"s32Value" json:"s32Value"`
	S64Value    *int64   `msgpack:"s64Value" json:"s64Value"`
	F32Value    *float32 `msgpack:"f32Value" json:"f32Value"`
	F64Value    *float64 `msgpack:"f64Value" json:"f64Value"`
	StringValue *string  `msgpack:"stringValue" json:"stringValue"`
	BytesValue  []byte   `msgpack:"bytesValue" json:"bytesValue"`
	ObjectValue *Thing   `msgpack:"objectValue" json:"objectValue"`
}

// MapFields holds the two mappings keyed by unsigned 32-bit integers.
// The "Primative" spelling is part of the wire contract.
type MapFields struct {
	MapStringPrimative map[uint32]string `msgpack:"mapStringPrimative" json:"mapStringPrimative"`
	MapU64Primative    map[uint32]uint64 `msgpack:"mapU64Primative" json:"mapU64Primative"`
}

// ListFields holds the ordered sequences
type ListFields struct {
	ListStrings         []string `msgpack:"listStrings" json:"listStrings"`
	ListU64s            []uint64 `msgpack:"listU64s" json:"listU64s"`
	ListObjects         []Thing  `msgpack:"listObjects" json:"listObjects"`
	ListObjectsOptional []*Thing `msgpack:"listObjectsOptional" json:"listObjectsOptional"`
}

// TestBundle aggregates one instance of each record
type TestBundle struct {
	Required RequiredFields `msgpack:"required" json:"required"`
	Optional OptionalFields `msgpack:"optional" json:"optional"`
	Maps     MapFields      `msgpack:"maps" json:"maps"`
	Lists    ListFields     `msgpack:"lists" json:"lists"`
}

// TestFunctionArgs is the argument record of testFunction.
// It uses the same keys as TestBundle.
type TestFunctionArgs struct {
	Required RequiredFields `msgpack:"required" json:"required"`
	Optional OptionalFields `msgpack:"optional" json:"optional"`
	Maps     MapFields      `msgpack:"maps" json:"maps"`
	Lists    ListFields     `msgpack:"lists" json:"lists"`
}

// Bundle returns the arguments as a TestBundle
func (a TestFunctionArgs) Bundle() TestBundle {
	return TestBundle(a)
}
