package codec

import "fmt"

// GRPCName is the content-subtype registered for CBOR over gRPC. Clients
// select it with grpc.CallContentSubtype(GRPCName).
const GRPCName = "cbor"

// GRPC adapts the CBOR codec to google.golang.org/grpc/encoding.Codec.
type GRPC struct{}

// Marshal encodes a gRPC message.
func (GRPC) Marshal(v any) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes a gRPC message.
func (GRPC) Unmarshal(data []byte, v any) error {
	if err := Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns the content-subtype.
func (GRPC) Name() string {
	return GRPCName
}
