package actor

import (
	"context"
	"math"
	"testing"

	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRequiredZero(t *testing.T) {
	out := FormatRequired(records.RequiredFields{StringValue: "x", BytesValue: []byte{}})
	assert.Equal(t, "{\nfalse\n0\n0\n0\n0\n0\n0\n0\n0\n0e0\n0e0\nx\nx\n}", out)
}

func TestFormatRequiredMax(t *testing.T) {
	out := FormatRequired(records.RequiredFields{
		BoolValue:   true,
		U8Value:     math.MaxUint8,
		U16Value:    math.MaxUint16,
		U32Value:    math.MaxUint32,
		U64Value:    math.MaxUint64,
		S8Value:     math.MinInt8,
		S16Value:    math.MinInt16,
		S32Value:    math.MinInt32,
		S64Value:    math.MinInt64,
		F32Value:    math.MaxFloat32,
		F64Value:    math.MaxFloat64,
		StringValue: "test",
		BytesValue:  []byte("test"),
		ObjectValue: records.Thing{Value: "ignored"},
	})

	expected := "{\ntrue\n255\n65535\n4294967295\n18446744073709551615\n" +
		"-128\n-32768\n-2147483648\n-9223372036854775808\n" +
		"3.4028234663852886e38\n1.7976931348623157e308\n" +
		"test\ntest\n}"
	assert.Equal(t, expected, out)
}

func TestFormatScientific(t *testing.T) {
	testCases := []struct {
		in       float64
		expected string
	}{
		{0, "0e0"},
		{math.Copysign(0, -1), "-0e0"},
		{1, "1e0"},
		{-1.5, "-1.5e0"},
		{0.001, "1e-3"},
		{123456, "1.23456e5"},
		{1e300, "1e300"},
		{math.SmallestNonzeroFloat64, "5e-324"},
		{float64(float32(0.1)), "1.0000000149011612e-1"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "NaN"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatScientific(tc.in), "input %v", tc.in)
	}
}

func TestForwardingHandlers(t *testing.T) {
	inner := NewDispatcher(Namespace)
	Handlers{TestUnary: FixtureHandlers().TestUnary}.Register(inner)

	relay := NewDispatcher(Namespace)
	ForwardingHandlers(NewInvokerHost(inner)).Register(relay)
	assert.Equal(t, []string{OpTestDecode, OpTestFunction, OpTestUnary}, relay.Operations())

	host := NewInvokerHost(relay)
	ctx := context.Background()
	bundle := records.TestBundle{Required: records.RequiredFields{StringValue: "relayed", BytesValue: []byte{1}}}

	got, err := host.TestUnary(ctx, bundle)
	require.NoError(t, err)
	assert.Equal(t, bundle, got)

	// the inner actor has no testDecode, the relay passes its error on
	_, err = host.TestDecode(ctx, bundle)
	assert.ErrorIs(t, err, wire.ErrOperationNotFound)
}
