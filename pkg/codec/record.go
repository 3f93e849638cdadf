package codec

// Default safety ceilings for field spans. Longer declared lengths are treated
// as corruption.
const (
	DefaultMaxKeySpan   = 20 * 1024
	DefaultMaxValueSpan = 10 * 1024 * 1024
)

// Record is one key/value pair of a container
type Record struct {
	Key           string
	Value         string
	KeyEncoding   StringEncoding
	ValueEncoding StringEncoding
}

// NewRecord creates a record with both fields stored as UTF-8
func NewRecord(key, value string) Record {
	return Record{
		Key:           key,
		Value:         value,
		KeyEncoding:   EncodingUTF8,
		ValueEncoding: EncodingUTF8,
	}
}

// Size returns the number of bytes the record occupies when encoded
func (r Record) Size() int {
	return 2*LengthFieldSize + FieldSize(r.Key, r.KeyEncoding) + FieldSize(r.Value, r.ValueEncoding)
}

// Container is a decoded container. Header is nil when the input was shorter
// than HeaderSize. Records keep their on-disk order.
type Container struct {
	Header  *ContainerHeader
	Records []Record
}

// Len returns the number of records
func (c *Container) Len() int {
	return len(c.Records)
}

// Limits bounds the spans the decoder accepts
type Limits struct {
	MaxKeySpan   int
	MaxValueSpan int
}

// DefaultLimits returns the stock safety ceilings
func DefaultLimits() Limits {
	return Limits{
		MaxKeySpan:   DefaultMaxKeySpan,
		MaxValueSpan: DefaultMaxValueSpan,
	}
}

// ContainerCodec decodes and encodes containers
type ContainerCodec struct {
	limits Limits
}

// NewContainerCodec creates a codec with the default limits
func NewContainerCodec() *ContainerCodec {
	return &ContainerCodec{limits: DefaultLimits()}
}

// NewContainerCodecWithLimits creates a codec with custom limits. Non-positive
// limits fall back to the defaults.
func NewContainerCodecWithLimits(limits Limits) *ContainerCodec {
	if limits.MaxKeySpan <= 0 {
		limits.MaxKeySpan = DefaultMaxKeySpan
	}
	if limits.MaxValueSpan <= 0 {
		limits.MaxValueSpan = DefaultMaxValueSpan
	}
	return &ContainerCodec{limits: limits}
}

// Limits returns the limits the codec decodes with
func (c *ContainerCodec) Limits() Limits {
	return c.limits
}
