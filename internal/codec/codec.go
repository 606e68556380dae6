package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts values to and from the opaque payload stored in the cache.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Msgpack encodes values with MessagePack. Structs (exported fields),
// slices, maps and primitives round-trip without a predeclared schema.
type Msgpack struct{}

func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Default is the codec used when none is configured.
var Default Codec = Msgpack{}
