package postgresql_test

import (
	"fmt"
	"reflect"
)

// scanStruct fills the named fields of the struct dest points to, standing in
// for a row scan into an anonymous struct.
func scanStruct(dest any, fields map[string]any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest is %T, want pointer to struct", dest)
	}
	for name, value := range fields {
		f := v.Elem().FieldByName(name)
		if !f.IsValid() {
			return fmt.Errorf("no field %s", name)
		}
		f.Set(reflect.ValueOf(value))
	}
	return nil
}
