package gotype

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"

	"github.com/syssam/veloxmap/types/sqltype"
)

var (
	valuerType  = reflect.TypeFor[driver.Valuer]()
	scannerType = reflect.TypeFor[sql.Scanner]()
)

// ValueScanner returns a descriptor for a Go type that implements
// driver.Valuer and whose pointer implements sql.Scanner. The column type
// is reported as OTHER since the type decides its own representation.
func ValueScanner(t reflect.Type) (*Descriptor, bool) {
	if t == nil || !t.Implements(valuerType) || !reflect.PointerTo(t).Implements(scannerType) {
		return nil, false
	}
	extract := func(src any) (any, error) {
		p := reflect.New(t)
		if err := p.Interface().(sql.Scanner).Scan(src); err != nil {
			return nil, fmt.Errorf("gotype: scan %v: %w", t, err)
		}
		return p.Elem().Interface(), nil
	}
	return New(t.String(), t, sqltype.OtherDescriptor, bindObject, extract), true
}
