package actor

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/ValentinKolb/wActor/lib/records"
)

// FixtureHandlers returns the reference handlers: testFunction and testUnary
// echo their inputs, testDecode renders the required fields with FormatRequired.
func FixtureHandlers() Handlers {
	return Handlers{
		TestFunction: func(
			_ context.Context,
			required records.RequiredFields,
			optional records.OptionalFields,
			maps records.MapFields,
			lists records.ListFields,
		) (records.TestBundle, error) {
			return records.TestBundle{
				Required: required,
				Optional: optional,
				Maps:     maps,
				Lists:    lists,
			}, nil
		},
		TestUnary: func(_ context.Context, bundle records.TestBundle) (records.TestBundle, error) {
			return bundle, nil
		},
		TestDecode: func(_ context.Context, bundle records.TestBundle) (string, error) {
			return FormatRequired(bundle.Required), nil
		},
	}
}

// ForwardingHandlers returns relay handlers: every call is passed on through
// host to the actor behind its binding and that actor's result is returned.
func ForwardingHandlers(host *Host) Handlers {
	return Handlers{
		TestFunction: host.TestFunction,
		TestUnary:    host.TestUnary,
		TestDecode:   host.TestDecode,
	}
}

// FormatRequired renders the required fields one per line between braces:
// the boolean, the eight integers, both floats in scientific notation and the
// string field twice. The output is matched byte for byte by other
// implementations of the test actor, so the layout must not change.
func FormatRequired(r records.RequiredFields) string {
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString("\n")
		sb.WriteString(s)
	}

	sb.WriteString("{")
	line(strconv.FormatBool(r.BoolValue))
	line(strconv.FormatUint(uint64(r.U8Value), 10))
	line(strconv.FormatUint(uint64(r.U16Value), 10))
	line(strconv.FormatUint(uint64(r.U32Value), 10))
	line(strconv.FormatUint(r.U64Value, 10))
	line(strconv.FormatInt(int64(r.S8Value), 10))
	line(strconv.FormatInt(int64(r.S16Value), 10))
	line(strconv.FormatInt(int64(r.S32Value), 10))
	line(strconv.FormatInt(r.S64Value, 10))
	line(FormatScientific(float64(r.F32Value)))
	line(FormatScientific(r.F64Value))
	line(r.StringValue)
	line(r.StringValue)
	sb.WriteString("\n}")
	return sb.String()
}

// FormatScientific formats f with the shortest mantissa that round-trips, an
// unsigned exponent without padding and no "+" sign (0e0, 1.5e-3, 1e300).
func FormatScientific(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mantissa + "e" + strconv.Itoa(n)
}
