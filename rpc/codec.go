// Package rpc implements the safe-polling platform contract of spec §6 as
// a gRPC service, adapted from the teacher's generated transmitter service
// (rpc/transmitter_grpc.pb.go): same service-descriptor/handler/client
// shape, retargeted at Poll/Write.
//
// This exercise cannot invoke protoc, so the wire messages here are plain
// Go structs registered against grpc-go with a small JSON encoding.Codec —
// the same technique grpc-go's own examples/features/encoding sample uses
// — instead of generated protoreflect bindings.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the codec negotiated over the wire. Registering it under
// "proto" means a plain grpc.Dial/NewServer with no explicit codec
// selection still gets JSON framing, since grpc-go defaults calls to the
// "proto" content-subtype when none is set.
const CodecName = "proto"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
