package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ErrConversion wraps every failure to turn a solution set into a Payload.
var ErrConversion = errors.New("failed to convert solution set")

// Payload is the caller-facing form of one solution set: a JSON array of
// expressions plus a content hash usable as an HTTP entity tag.
//
// A Payload handed out by the cached strategy is shared between callers and
// must not be modified.
type Payload struct {
	Index int
	Count int
	Body  []byte
	ETag  string
}

// Encoder serializes a solution set.
type Encoder func(solutions []string) ([]byte, error)

// JSONEncoder encodes a solution set as a JSON array of strings. A nil or
// empty set encodes as [].
func JSONEncoder(solutions []string) ([]byte, error) {
	if solutions == nil {
		solutions = []string{}
	}
	return json.Marshal(solutions)
}

func newPayload(enc Encoder, idx int, solutions []string) (*Payload, error) {
	body, err := enc(solutions)
	if err != nil {
		return nil, fmt.Errorf("%w for index %04d: %v", ErrConversion, idx, err)
	}
	return &Payload{
		Index: idx,
		Count: len(solutions),
		Body:  body,
		ETag:  etag(body),
	}, nil
}

func etag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
