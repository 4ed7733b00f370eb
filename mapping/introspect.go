package mapping

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vmihailenco/tagparser/v2"
)

// TagName is the struct tag read by Introspect.
//
//	type Tester struct {
//		ID   int64  `orm:",id"`
//		Name string `orm:"name,converter:string_clob"`
//		Code string `orm:"code,convert:off"`
//		Note string `orm:",type:text"`
//		Tmp  string `orm:"-"`
//	}
//
// The tag name is the column. Options:
//
//	id              marks the identifier
//	type:<name>     selects a registered basic type
//	converter:<n>   assigns a registered converter
//	convert:off     disables converter matching
const TagName = "orm"

// Introspect returns the entity definition of a struct value, pointer to a
// struct or struct reflect.Type. Unexported fields and fields tagged "-" are
// skipped; embedded structs are flattened.
func Introspect(v any) (*EntityDef, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	t = indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("mapping: cannot introspect %v: not a struct type", t)
	}
	def := &EntityDef{Name: t.Name(), GoType: t}
	if err := introspectFields(def, t); err != nil {
		return nil, err
	}
	return def, nil
}

func introspectFields(def *EntityDef, t reflect.Type) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		if f.Anonymous && !hasTag && indirect(f.Type).Kind() == reflect.Struct {
			if err := introspectFields(def, indirect(f.Type)); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		ad, err := attributeDef(f, tag)
		if err != nil {
			return fmt.Errorf("mapping: %s.%s: %w", def.Name, f.Name, err)
		}
		def.Attributes = append(def.Attributes, ad)
	}
	return nil
}

func attributeDef(f reflect.StructField, tag string) (*AttributeDef, error) {
	ad := &AttributeDef{
		Name:   AttributeName(f.Name),
		GoType: f.Type,
	}
	parsed := tagparser.Parse(tag)
	ad.Column = parsed.Name
	for opt, val := range parsed.Options {
		switch opt {
		case "id":
			ad.ID = true
		case "type":
			if val == "" {
				return nil, fmt.Errorf("option type requires a value")
			}
			ad.TypeName = val
		case "converter":
			if val == "" {
				return nil, fmt.Errorf("option converter requires a value")
			}
			ad.Converter = val
		case "convert":
			switch strings.ToLower(val) {
			case "off", "false", "disabled":
				ad.DisableConversion = true
			case "on", "true", "":
			default:
				return nil, fmt.Errorf("invalid convert option %q", val)
			}
		default:
			return nil, fmt.Errorf("unknown option %q", opt)
		}
	}
	return ad, nil
}
