package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Kind discriminator values for the Type union on the wire.
const (
	kindPrimitive     = "primitive"
	kindDelegate      = "delegate"
	kindPrimitiveList = "primitive_list"
	kindGeneralList   = "general_list"
	kindBoxed         = "boxed"
	kindOptional      = "optional"
	kindStructRef     = "struct_ref"
)

// Each variant marshals as a tagged object: its own fields plus a leading
// "kind" discriminator. The alias types strip the MarshalJSON method so the
// embedded value marshals its plain fields.

func (t Primitive) MarshalJSON() ([]byte, error) {
	type alias Primitive
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindPrimitive, alias(t)})
}

func (t Delegate) MarshalJSON() ([]byte, error) {
	type alias Delegate
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindDelegate, alias(t)})
}

func (t PrimitiveList) MarshalJSON() ([]byte, error) {
	type alias PrimitiveList
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindPrimitiveList, alias(t)})
}

func (t GeneralList) MarshalJSON() ([]byte, error) {
	type alias GeneralList
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindGeneralList, alias(t)})
}

func (t Boxed) MarshalJSON() ([]byte, error) {
	type alias Boxed
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindBoxed, alias(t)})
}

func (t Optional) MarshalJSON() ([]byte, error) {
	type alias Optional
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindOptional, alias(t)})
}

func (t StructRef) MarshalJSON() ([]byte, error) {
	type alias StructRef
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{kindStructRef, alias(t)})
}

// UnmarshalType decodes one Type node from its tagged JSON object. It is the
// exact inverse of the variant MarshalJSON methods; unknown discriminators
// are an error, keeping the union closed on the wire too.
func UnmarshalType(data []byte) (Type, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("missing type node")
	}

	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("type node: %w", err)
	}

	switch probe.Kind {
	case kindPrimitive:
		var t Primitive
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil

	case kindDelegate:
		var t Delegate
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil

	case kindPrimitiveList:
		var t PrimitiveList
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil

	case kindGeneralList:
		var raw struct {
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		inner, err := UnmarshalType(raw.Inner)
		if err != nil {
			return nil, fmt.Errorf("general_list: %w", err)
		}
		return GeneralList{Inner: inner}, nil

	case kindBoxed:
		var raw struct {
			Inner                 json.RawMessage `json:"inner"`
			ExistsInRealSignature bool            `json:"exists_in_real_signature"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		inner, err := UnmarshalType(raw.Inner)
		if err != nil {
			return nil, fmt.Errorf("boxed: %w", err)
		}
		return Boxed{Inner: inner, ExistsInRealSignature: raw.ExistsInRealSignature}, nil

	case kindOptional:
		var raw struct {
			Repr  OptionalRepr    `json:"repr"`
			Inner json.RawMessage `json:"inner"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		inner, err := UnmarshalType(raw.Inner)
		if err != nil {
			return nil, fmt.Errorf("optional: %w", err)
		}
		return Optional{Repr: raw.Repr, Inner: inner}, nil

	case kindStructRef:
		var t StructRef
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unknown type node kind %q", probe.Kind)
	}
}

// UnmarshalJSON decodes a Field, routing the type node through
// UnmarshalType.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name Ident           `json:"name"`
		Type json.RawMessage `json:"type"`
		Docs []string        `json:"docs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ty, err := UnmarshalType(raw.Type)
	if err != nil {
		return fmt.Errorf("field %q: %w", raw.Name.Raw, err)
	}
	f.Name = raw.Name
	f.Type = ty
	f.Docs = raw.Docs
	return nil
}

// UnmarshalJSON decodes a Func, routing the output node through
// UnmarshalType.
func (f *Func) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Inputs []Field         `json:"inputs"`
		Output json.RawMessage `json:"output"`
		Mode   Mode            `json:"mode"`
		Docs   []string        `json:"docs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := UnmarshalType(raw.Output)
	if err != nil {
		return fmt.Errorf("func %q output: %w", raw.Name, err)
	}
	f.Name = raw.Name
	f.Inputs = raw.Inputs
	f.Output = out
	f.Mode = raw.Mode
	f.Docs = raw.Docs
	return nil
}

// MarshalStable serializes v with deterministic byte output: struct fields
// in declaration order, map keys sorted, HTML escaping disabled so type
// text like Vec<u8> in doc lines survives verbatim. Pretty output uses
// two-space indentation. This is the only serialization used for files and
// golden fixtures.
func MarshalStable(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON writes v to w in the MarshalStable format.
func EncodeJSON(w io.Writer, v any, pretty bool) error {
	data, err := MarshalStable(v, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
