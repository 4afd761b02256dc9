package codec

// Encodable is implemented by types that write themselves to an Encoder.
type Encodable interface {
	EncodeWire(*Encoder) error
}

// Decodable is implemented by types that read themselves from a Decoder.
// Implementations are pointer receivers that fill the receiver in place.
type Decodable interface {
	DecodeWire(*Decoder) error
}

// BorrowDecodable is the zero-copy variant of Decodable. Implementations
// may keep subslices of the Decoder's source buffer, so a value decoded
// this way is only valid while that buffer is alive and unmodified.
type BorrowDecodable interface {
	DecodeWireBorrowed(*Decoder) error
}

// EncodeValue adapts an Encodable value to EncodeFn, so user types compose
// with the container drivers.
func EncodeValue[T Encodable](e *Encoder, v T) error {
	return v.EncodeWire(e)
}

// DecodeValue adapts a Decodable type to DecodeFn.
func DecodeValue[T any, PT interface {
	*T
	Decodable
}](d *Decoder) (T, error) {
	var v T
	err := PT(&v).DecodeWire(d)
	return v, err
}

// BorrowDecodeValue adapts a BorrowDecodable type to DecodeFn.
func BorrowDecodeValue[T any, PT interface {
	*T
	BorrowDecodable
}](d *Decoder) (T, error) {
	var v T
	err := PT(&v).DecodeWireBorrowed(d)
	return v, err
}
