package cref

import (
	"github.com/pkg/errors"

	"github.com/rawbytedev/cref/pkg/mem"
)

// attach records that holder keeps held alive. Addresses written into a
// buffer are plain bytes to the garbage collector, so this list is the only
// edge from holder to held.
func attach(holder *Buffer, held any) {
	holder.refs = append(holder.refs, held)
}

// WritePointer stores p's address in b at offset and makes b retain p. A nil
// p writes a NULL pointer.
func WritePointer(b *Buffer, offset int, p *Buffer) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	target := mem.Null
	if p != nil {
		target = p.region
	}
	if err := mem.WritePointer(r, offset, target); err != nil {
		return err
	}
	if p != nil {
		attach(b, p)
	}
	logger().Debug().
		Uint64("holder", uint64(b.Address())).
		Int("offset", offset).
		Uint64("target", uint64(target.Address())).
		Msg("wrote pointer")
	return nil
}

// ReadPointer returns an untagged buffer of size bytes at the address stored
// in b at offset. A stored NULL yields a zero-length NULL buffer.
func ReadPointer(b *Buffer, offset, size int) (*Buffer, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	p, err := mem.ReadPointer(r, offset, size)
	if err != nil {
		return nil, err
	}
	return newBuffer(p, nil), nil
}

// WriteObject stores a handle to v in b at offset. v stays alive for as long
// as b does.
func WriteObject(b *Buffer, offset int, v any) error {
	r, err := regionOf(b)
	if err != nil {
		return err
	}
	keep, err := mem.WriteObject(r, offset, v)
	if err != nil {
		return errors.Wrapf(err, "write %T", v)
	}
	attach(b, keep)
	return nil
}

// ReadObject resolves the handle stored in b at offset. An empty slot yields
// nil.
func ReadObject(b *Buffer, offset int) (any, error) {
	r, err := regionOf(b)
	if err != nil {
		return nil, err
	}
	return mem.ReadObject(r, offset)
}
