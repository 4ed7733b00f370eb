// Package veloxmap resolves the basic persistence type of mapped attributes,
// taking user-supplied attribute converters into account.
//
// A basic type pairs a Go-side descriptor with a SQL type code. Attributes
// whose Go type has no intrinsic mapping can be given a converter that
// translates between the attribute type and a column type:
//
//	clob := converter.New("string_clob", converter.StringClob(), true)
//
//	cfg := config.New()
//	cfg.AddAttributeConverter(clob)
//	cfg.AddEntity(Tester{})
//	md, err := cfg.BuildMappings()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	typ, _ := md.ClassMapping("Tester").Property("name")
//	fmt.Println(typ.Value.MustType().SQLDescriptor()) // CLOB
//
// # Resolution Order
//
// For every attribute the resolver applies, in order:
//
//  1. convert:off disables converter matching; a type:<name> still applies.
//  2. type:<name> selects a registered basic type by name.
//  3. converter:<name> applies that converter unconditionally.
//  4. An auto-apply converter registered for the exact attribute type.
//  5. The registered basic type for the declared Go type, or a type built
//     from its driver.Valuer and sql.Scanner methods.
//
// # Sub-packages
//
//   - types/sqltype: SQL type codes and descriptors
//   - types/gotype: Go-side type descriptors
//   - types: basic types and the named type registry
//   - converter: attribute converters and the auto-apply registry
//   - mapping: attribute metadata, values, entities and the resolver
//   - config: configuration builder, YAML mapping files, hot reload
//   - dialect/sql: database driver and live column inspection
//   - dialect/sql/schema: column type description and drift validation
//   - cmd/veloxmap: command line interface
package veloxmap
