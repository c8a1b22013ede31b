package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/gnuflag"

	"github.com/Lukas-Klein/azure-config-cli/internal/request"
	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// The flag values below implement gnuflag.Value on a request.Field, so a
// field is present exactly when its flag appeared on the command line.

type stringValue struct{ f *request.Field[string] }

func (v stringValue) Set(s string) error {
	v.f.Set(s)
	return nil
}

func (v stringValue) String() string {
	if v.f == nil {
		return ""
	}
	return v.f.Value()
}

type int32Value struct{ f *request.Field[int32] }

func (v int32Value) Set(s string) error {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return err
	}
	v.f.Set(int32(n))
	return nil
}

func (v int32Value) String() string {
	if v.f == nil || !v.f.Present() {
		return ""
	}
	return strconv.FormatInt(int64(v.f.Value()), 10)
}

type int64Value struct{ f *request.Field[int64] }

func (v int64Value) Set(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	v.f.Set(n)
	return nil
}

func (v int64Value) String() string {
	if v.f == nil || !v.f.Present() {
		return ""
	}
	return strconv.FormatInt(v.f.Value(), 10)
}

type float64Value struct{ f *request.Field[float64] }

func (v float64Value) Set(s string) error {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	v.f.Set(n)
	return nil
}

func (v float64Value) String() string {
	if v.f == nil || !v.f.Present() {
		return ""
	}
	return strconv.FormatFloat(v.f.Value(), 'g', -1, 64)
}

// boolValue is a switch: "--X" sets true, "--X=false" sets an explicit
// false.
type boolValue struct{ f *request.Field[bool] }

func (v boolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	v.f.Set(b)
	return nil
}

func (v boolValue) String() string {
	if v.f == nil || !v.f.Present() {
		return ""
	}
	return strconv.FormatBool(v.f.Value())
}

func (boolValue) IsBoolFlag() bool { return true }

// listValue accepts comma separated items and may be repeated; items
// accumulate. "--X=" yields a present but empty list.
type listValue struct{ f *request.Field[[]string] }

func (v listValue) Set(s string) error {
	items := v.f.Value()
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	v.f.Set(items)
	return nil
}

func (v listValue) String() string {
	if v.f == nil {
		return ""
	}
	return strings.Join(v.f.Value(), ",")
}

func stringVar(f *gnuflag.FlagSet, field *request.Field[string], name, usage string) {
	f.Var(stringValue{field}, name, usage)
}

func int32Var(f *gnuflag.FlagSet, field *request.Field[int32], name, usage string) {
	f.Var(int32Value{field}, name, usage)
}

func int64Var(f *gnuflag.FlagSet, field *request.Field[int64], name, usage string) {
	f.Var(int64Value{field}, name, usage)
}

func float64Var(f *gnuflag.FlagSet, field *request.Field[float64], name, usage string) {
	f.Var(float64Value{field}, name, usage)
}

func boolVar(f *gnuflag.FlagSet, field *request.Field[bool], name, usage string) {
	f.Var(boolValue{field}, name, usage)
}

func listVar(f *gnuflag.FlagSet, field *request.Field[[]string], name, usage string) {
	f.Var(listValue{field}, name, usage)
}

// enumField converts a raw flag into a field of an SDK enum type, matching
// case insensitively against allowed.
func enumField[T ~string](parameter string, raw request.Field[string], allowed []T) (request.Field[T], error) {
	value, ok := raw.Get()
	if !ok {
		return request.Field[T]{}, nil
	}
	canonical, err := validate.OneOf(parameter, value, enumNames(allowed))
	if err != nil {
		return request.Field[T]{}, err
	}
	return request.Some(T(canonical)), nil
}

// enumListField is enumField for list flags.
func enumListField[T ~string](parameter string, raw request.Field[[]string], allowed []T) (request.Field[[]T], error) {
	values, ok := raw.Get()
	if !ok {
		return request.Field[[]T]{}, nil
	}
	out := make([]T, 0, len(values))
	for _, value := range values {
		canonical, err := validate.OneOf(parameter, value, enumNames(allowed))
		if err != nil {
			return request.Field[[]T]{}, err
		}
		out = append(out, T(canonical))
	}
	return request.Some(out), nil
}

func enumNames[T ~string](values []T) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return names
}

// enumUsage appends the allowed values to a flag description.
func enumUsage[T ~string](usage string, allowed []T) string {
	return fmt.Sprintf("%s (%s)", usage, strings.Join(enumNames(allowed), "|"))
}
