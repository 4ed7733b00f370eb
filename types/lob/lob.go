// Package lob defines the Go representations of large object columns.
package lob

import (
	"database/sql/driver"
	"fmt"
)

// Clob is character data stored in a character large object column.
type Clob string

// Value implements driver.Valuer.
func (c Clob) Value() (driver.Value, error) { return string(c), nil }

// Scan implements sql.Scanner.
func (c *Clob) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = ""
	case string:
		*c = Clob(v)
	case []byte:
		*c = Clob(v)
	default:
		return fmt.Errorf("lob: cannot scan %T into Clob", src)
	}
	return nil
}

// Len returns the number of bytes held by the clob.
func (c Clob) Len() int { return len(c) }

// Blob is binary data stored in a binary large object column.
type Blob []byte

// Value implements driver.Valuer.
func (b Blob) Value() (driver.Value, error) { return []byte(b), nil }

// Scan implements sql.Scanner.
func (b *Blob) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = nil
	case []byte:
		*b = append(Blob(nil), v...)
	case string:
		*b = Blob(v)
	default:
		return fmt.Errorf("lob: cannot scan %T into Blob", src)
	}
	return nil
}
