package origin

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the pool wire format changes.
const poolSchemaVersion uint16 = 1

// poolEnvelope is the on-disk/wire shape: a schema version guarding the
// payload against format drift.
type poolEnvelope struct {
	Schema uint16
	Pool   Pool
}

// EncodePool writes the pool to w in msgpack form.
func EncodePool(w io.Writer, p *Pool) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(poolEnvelope{
		Schema: poolSchemaVersion,
		Pool:   *p,
	})
}

// DecodePool reads a pool from r and validates it before returning.
// Schema mismatches and malformed pools are rejected here, never
// discovered lazily during resolution.
func DecodePool(r io.Reader) (*Pool, error) {
	var env poolEnvelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	if env.Schema != poolSchemaVersion {
		return nil, fmt.Errorf("decode pool: schema %d, want %d: %w",
			env.Schema, poolSchemaVersion, ErrMalformedPool)
	}
	if err := env.Pool.Validate(); err != nil {
		return nil, err
	}
	return &env.Pool, nil
}
