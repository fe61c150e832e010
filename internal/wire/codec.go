package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// FormatError reports a malformed or truncated binary stream at the
// primitive level: a short read where more bytes were expected, or a
// string too long for an lp_string. Structural checks (magic, version,
// hash length, dimension references) are made by the tree reader.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("wire: format error: %s", e.Reason)
}

// Magic is the 4-byte signature every tree stream starts with.
var Magic = [4]byte{'G', 'H', 'T', 0}

// Version is the only binary format version this package writes and
// reads.
const Version = 1

func wrapRead(err error, what string) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &FormatError{Reason: fmt.Sprintf("truncated stream reading %s", what)}
	}
	return &IOError{Op: "read " + what, Err: err}
}

func wrapWrite(err error, what string) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: "write " + what, Err: err}
}

// WriteU8 writes a single byte.
func WriteU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return wrapWrite(err, "u8")
}

// ReadU8 reads a single byte.
func ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapRead(err, "u8")
	}
	return buf[0], nil
}

// WriteU16 writes a little-endian uint16.
func WriteU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return wrapWrite(err, "u16")
}

// ReadU16 reads a little-endian uint16.
func ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapRead(err, "u16")
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// WriteF64 writes a little-endian IEEE-754 double.
func WriteF64(w io.Writer, v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return wrapWrite(err, "f64")
}

// ReadF64 reads a little-endian IEEE-754 double.
func ReadF64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapRead(err, "f64")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// WriteBytes writes raw bytes with no length prefix.
func WriteBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return wrapWrite(err, "raw bytes")
}

// ReadBytes reads exactly n raw bytes.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapRead(err, "raw bytes")
	}
	return buf, nil
}

// WriteLPString writes a length-prefixed (u16 length, no NUL) string.
func WriteLPString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return &FormatError{Reason: fmt.Sprintf("string too long for lp_string: %d bytes", len(s))}
	}
	if err := WriteU16(w, uint16(len(s))); err != nil {
		return err
	}
	return WriteBytes(w, []byte(s))
}

// ReadLPString reads a length-prefixed (u16 length, no NUL) string.
func ReadLPString(r io.Reader) (string, error) {
	n, err := ReadU16(r)
	if err != nil {
		return "", err
	}
	b, err := ReadBytes(r, int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteUintLE writes a fixed-width little-endian unsigned integer of
// 1..8 bytes, used for the packed attribute value slots.
func WriteUintLE(w io.Writer, v uint64, width int) error {
	buf := make([]byte, width)
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	return WriteBytes(w, buf)
}

// ReadUintLE reads a fixed-width little-endian unsigned integer of 1..8
// bytes.
func ReadUintLE(r io.Reader, width int) (uint64, error) {
	buf, err := ReadBytes(r, width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(buf[i]) << (8 * uint(i))
	}
	return v, nil
}
