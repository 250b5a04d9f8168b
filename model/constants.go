package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Blob is the transport form of a model's constant values: an opaque string
// passed as the trailing argument to every model invocation.
//
// The encoding is a canonical ordered key-value list, "name=value" pairs
// joined by ';', with values formatted by strconv in the shortest exact
// form. It is structured data parsed with strconv only, never evaluated as
// code.
type Blob string

// EncodeConstants serializes the declared constants into a Blob, taking the
// override value where one is supplied and the declared default otherwise.
//
// It fails with ErrUnknownConstant when an override names an undeclared
// constant, and with ErrOutOfRange when a continuous override falls outside
// [Min, Max] or a discrete override is not in the declared value list.
// The blob preserves declaration order, so encoding is deterministic.
func EncodeConstants(decls []Constant, overrides map[string]float64) (Blob, error) {
	for name := range overrides {
		found := false
		for _, c := range decls {
			if c.ShortName == name {
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("%w: %q", ErrUnknownConstant, name)
		}
	}

	var sb strings.Builder
	for i, c := range decls {
		v := c.Default
		if ov, ok := overrides[c.ShortName]; ok {
			if !c.allows(ov) {
				if len(c.ListValues) > 0 {
					return "", fmt.Errorf("%w: constant %q value %g not in discrete value list",
						ErrOutOfRange, c.ShortName, ov)
				}

				return "", fmt.Errorf("%w: constant %q value %g outside [%g, %g]",
					ErrOutOfRange, c.ShortName, ov, c.Min, c.Max)
			}
			v = ov
		}

		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(c.ShortName)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}

	return Blob(sb.String()), nil
}

// Decode parses the blob back into a name to value mapping. It is the exact
// inverse of EncodeConstants: the key set and values round-trip unchanged.
func (b Blob) Decode() (map[string]float64, error) {
	out := make(map[string]float64)
	if b == "" {
		return out, nil
	}

	for _, pair := range strings.Split(string(b), ";") {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed constants blob entry %q", pair)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("constants blob repeats %q", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("constants blob entry %q: %w", pair, err)
		}
		out[name] = v
	}

	return out, nil
}

// Value returns the named constant's value from the blob. Model functions
// that need only a couple of constants can use this instead of Decode.
func (b Blob) Value(name string) (float64, error) {
	m, err := b.Decode()
	if err != nil {
		return 0, err
	}
	v, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownConstant, name)
	}

	return v, nil
}
