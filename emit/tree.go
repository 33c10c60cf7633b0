package emit

import (
	"fmt"
	"io"
	"reflect"

	"github.com/Joana-Martins/C-Compiler/lexer"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var (
	posType       = reflect.TypeOf(lexer.FilePos{})
	tokenKindType = reflect.TypeOf(lexer.TokenKind(0))
)

// Tree converts a syntax node into nested maps and slices with the source
// positions left out. Every struct becomes a map with a "kind" entry naming
// its type. Two trees that differ only in positions convert to equal
// values.
func Tree(n interface{}) interface{} {
	return tree(reflect.ValueOf(n))
}

func tree(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}
	if v.Type() == tokenKindType {
		if v.IsZero() {
			return ""
		}
		return v.Interface().(fmt.Stringer).String()
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return tree(v.Elem())
	case reflect.Struct:
		t := v.Type()
		m := map[string]interface{}{"kind": t.Name()}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Type == posType || f.PkgPath != "" {
				continue
			}
			m[f.Name] = tree(v.Field(i))
		}
		return m
	case reflect.Slice:
		ret := make([]interface{}, v.Len())
		for i := range ret {
			ret[i] = tree(v.Index(i))
		}
		return ret
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return v.Interface()
}

// JSON writes the position-free tree of n as indented JSON.
func JSON(n interface{}, w io.Writer) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Tree(n))
}

// YAML writes the position-free tree of n as YAML.
func YAML(n interface{}, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Tree(n)); err != nil {
		return err
	}
	return enc.Close()
}
