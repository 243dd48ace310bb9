package io

import (
	"errors"
	"io"
)

// Serializable defines the binary encoding/decoding interface. Errors are
// returned via BinReader/BinWriter Err field.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

type decodable interface {
	DecodeBinary(*BinReader)
}

// ToByteArray serializes s into a byte slice.
func ToByteArray(s Serializable) ([]byte, error) {
	w := NewBufBinWriter()
	s.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromByteArray deserializes s from the given byte slice. The encoding must
// occupy the whole slice, trailing bytes are an error.
func FromByteArray(s Serializable, data []byte) error {
	r := NewBinReaderFromBuf(data)
	s.DecodeBinary(r)
	if r.Err != nil {
		return r.Err
	}
	_ = r.ReadB()
	if !errors.Is(r.Err, io.EOF) {
		return errors.New("additional data after the encoded value")
	}
	return nil
}
