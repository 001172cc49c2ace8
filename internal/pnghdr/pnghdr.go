// Package pnghdr reads the image dimensions from a PNG file header.
//
// Only the 8-byte signature and the prefix of the leading IHDR chunk are
// consumed. No other chunk is parsed and no CRC is checked.
package pnghdr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature is the fixed 8-byte PNG magic number.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const ihdrTag = "IHDR"

// Header is the width and height carried by the IHDR chunk.
type Header struct {
	Width  uint32
	Height uint32
}

// ReadFile opens path and reads its header. The file is closed on every
// return path.
func ReadFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, &IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	h, err := Read(f)
	if err != nil {
		return Header{}, withPath(err, path)
	}
	return h, nil
}

// Read decodes a header from r. A short read anywhere is an error; the
// returned Header is zero whenever err is non-nil.
func Read(r io.Reader) (Header, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		if isShort(err) {
			return Header{}, &FormatError{Reason: ErrBadSignature, Err: err}
		}
		return Header{}, &IOError{Op: "read signature", Err: err}
	}
	if sig != Signature {
		return Header{}, &FormatError{Reason: ErrBadSignature}
	}

	// length(4) + type(4) + width(4) + height(4)
	var chunk [16]byte
	if _, err := io.ReadFull(r, chunk[:8]); err != nil {
		return Header{}, &IOError{Op: "read chunk header", Err: err}
	}
	if !bytes.Equal(chunk[4:8], []byte(ihdrTag)) {
		return Header{}, &FormatError{Reason: ErrMissingIHDR}
	}
	if _, err := io.ReadFull(r, chunk[8:]); err != nil {
		return Header{}, &IOError{Op: "read dimensions", Err: err}
	}

	return Header{
		Width:  binary.BigEndian.Uint32(chunk[8:12]),
		Height: binary.BigEndian.Uint32(chunk[12:16]),
	}, nil
}

func isShort(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func withPath(err error, path string) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path = path
		return fe
	}
	var ie *IOError
	if errors.As(err, &ie) {
		ie.Path = path
		return ie
	}
	return fmt.Errorf("%s: %w", path, err)
}
