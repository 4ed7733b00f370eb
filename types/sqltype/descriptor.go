package sqltype

// Descriptor is the SQL side of a basic type. Descriptors are singletons:
// two basic types bound to the same SQL type share the same *Descriptor.
type Descriptor struct {
	code Code
}

// Code returns the SQL type code.
func (d *Descriptor) Code() Code { return d.code }

// String returns the SQL name of the descriptor.
func (d *Descriptor) String() string { return d.code.String() }

// Standard SQL descriptors.
var (
	BitDescriptor           = &Descriptor{code: Bit}
	TinyIntDescriptor       = &Descriptor{code: TinyInt}
	SmallIntDescriptor      = &Descriptor{code: SmallInt}
	IntegerDescriptor       = &Descriptor{code: Integer}
	BigIntDescriptor        = &Descriptor{code: BigInt}
	RealDescriptor          = &Descriptor{code: Real}
	FloatDescriptor         = &Descriptor{code: Float}
	DoubleDescriptor        = &Descriptor{code: Double}
	NumericDescriptor       = &Descriptor{code: Numeric}
	DecimalDescriptor       = &Descriptor{code: Decimal}
	BooleanDescriptor       = &Descriptor{code: Boolean}
	CharDescriptor          = &Descriptor{code: Char}
	VarcharDescriptor       = &Descriptor{code: Varchar}
	LongVarCharDescriptor   = &Descriptor{code: LongVarChar}
	ClobDescriptor          = &Descriptor{code: Clob}
	NClobDescriptor         = &Descriptor{code: NClob}
	BinaryDescriptor        = &Descriptor{code: Binary}
	VarBinaryDescriptor     = &Descriptor{code: VarBinary}
	LongVarBinaryDescriptor = &Descriptor{code: LongVarBinary}
	BlobDescriptor          = &Descriptor{code: Blob}
	DateDescriptor          = &Descriptor{code: Date}
	TimeDescriptor          = &Descriptor{code: Time}
	TimestampDescriptor     = &Descriptor{code: Timestamp}
	UUIDDescriptor          = &Descriptor{code: UUID}
	JSONDescriptor          = &Descriptor{code: JSON}
	OtherDescriptor         = &Descriptor{code: Other}
)

var descriptors = map[Code]*Descriptor{}

func init() {
	for _, d := range []*Descriptor{
		BitDescriptor, TinyIntDescriptor, SmallIntDescriptor, IntegerDescriptor,
		BigIntDescriptor, RealDescriptor, FloatDescriptor, DoubleDescriptor,
		NumericDescriptor, DecimalDescriptor, BooleanDescriptor, CharDescriptor,
		VarcharDescriptor, LongVarCharDescriptor, ClobDescriptor, NClobDescriptor,
		BinaryDescriptor, VarBinaryDescriptor, LongVarBinaryDescriptor, BlobDescriptor,
		DateDescriptor, TimeDescriptor, TimestampDescriptor, UUIDDescriptor,
		JSONDescriptor, OtherDescriptor,
	} {
		descriptors[d.code] = d
	}
}

// For returns the standard descriptor of the given code.
func For(c Code) (*Descriptor, bool) {
	d, ok := descriptors[c]
	return d, ok
}
