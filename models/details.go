package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DetailValue is the value of one dynamic field. Exactly one of Text, Number or Bool
// is meaningful, selected by Kind.
type DetailValue struct {
	Kind   FieldType
	Text   string
	Number float64
	Bool   bool
}

// TextValue builds a text detail.
func TextValue(s string) DetailValue { return DetailValue{Kind: FieldTypeText, Text: s} }

// NumberValue builds a number detail.
func NumberValue(n float64) DetailValue { return DetailValue{Kind: FieldTypeNumber, Number: n} }

// BoolValue builds a boolean detail.
func BoolValue(b bool) DetailValue { return DetailValue{Kind: FieldTypeBoolean, Bool: b} }

// Truthy reports whether the value counts as filled in for a required field.
func (v DetailValue) Truthy() bool {
	switch v.Kind {
	case FieldTypeText:
		return strings.TrimSpace(v.Text) != ""
	case FieldTypeNumber:
		return v.Number != 0
	case FieldTypeBoolean:
		return v.Bool
	}
	return false
}

// Interface returns the bare Go value held by v.
func (v DetailValue) Interface() any {
	switch v.Kind {
	case FieldTypeNumber:
		return v.Number
	case FieldTypeBoolean:
		return v.Bool
	default:
		return v.Text
	}
}

func (v DetailValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON infers the kind from the JSON type. Use CoerceDetail to bind the value
// to a declared field type.
func (v *DetailValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	inferred, err := inferDetail(raw)
	if err != nil {
		return err
	}
	*v = inferred
	return nil
}

func (v DetailValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(v.Interface())
}

func (v *DetailValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		*v = TextValue(raw.StringValue())
	case bson.TypeDouble:
		*v = NumberValue(raw.Double())
	case bson.TypeInt32:
		*v = NumberValue(float64(raw.Int32()))
	case bson.TypeInt64:
		*v = NumberValue(float64(raw.Int64()))
	case bson.TypeBoolean:
		*v = BoolValue(raw.Boolean())
	case bson.TypeNull:
		*v = DetailValue{}
	default:
		return fmt.Errorf("unsupported detail bson type %s", t)
	}
	return nil
}

func inferDetail(raw any) (DetailValue, error) {
	switch t := raw.(type) {
	case nil:
		return DetailValue{}, nil
	case string:
		return TextValue(t), nil
	case float64:
		return NumberValue(t), nil
	case bool:
		return BoolValue(t), nil
	default:
		return DetailValue{}, fmt.Errorf("unsupported detail value %T", raw)
	}
}

// CoerceDetail converts v to the declared field type. Strings holding numbers or
// booleans are parsed; values that cannot be converted are rejected.
func CoerceDetail(v DetailValue, kind FieldType) (DetailValue, error) {
	if v.Kind == "" {
		return DetailValue{Kind: kind}, nil
	}
	if v.Kind == kind {
		return v, nil
	}
	switch kind {
	case FieldTypeText:
		switch v.Kind {
		case FieldTypeNumber:
			return TextValue(strconv.FormatFloat(v.Number, 'f', -1, 64)), nil
		case FieldTypeBoolean:
			return TextValue(strconv.FormatBool(v.Bool)), nil
		}
	case FieldTypeNumber:
		if v.Kind == FieldTypeText {
			s := strings.TrimSpace(v.Text)
			if s == "" {
				return NumberValue(0), nil
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return DetailValue{}, fmt.Errorf("%q is not a number", v.Text)
			}
			return NumberValue(n), nil
		}
	case FieldTypeBoolean:
		if v.Kind == FieldTypeText {
			s := strings.TrimSpace(v.Text)
			if s == "" {
				return BoolValue(false), nil
			}
			b, err := strconv.ParseBool(s)
			if err != nil {
				return DetailValue{}, fmt.Errorf("%q is not a boolean", v.Text)
			}
			return BoolValue(b), nil
		}
	}
	return DetailValue{}, fmt.Errorf("cannot use %s value as %s", v.Kind, kind)
}

// DecodeDetails binds a loosely typed details bag to the declared fields. Keys that
// the schema does not declare keep their inferred kind; section fields are dropped.
func DecodeDetails(raw map[string]DetailValue, fields []DynamicField) (map[string]DetailValue, error) {
	declared := make(map[string]DynamicField, len(fields))
	for _, f := range fields {
		declared[f.Key] = f
	}
	out := make(map[string]DetailValue, len(raw))
	for key, val := range raw {
		f, ok := declared[key]
		if !ok {
			out[key] = val
			continue
		}
		if !f.IsInput() {
			continue
		}
		coerced, err := CoerceDetail(val, f.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: details.%s: %w", ErrInvalidDetail, key, err)
		}
		out[key] = coerced
	}
	return out, nil
}
