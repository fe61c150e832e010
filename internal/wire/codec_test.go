package wire

import (
	"bytes"
	"testing"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := NewMemWriter()
	if err := WriteU8(buf, 0xAB); err != nil {
		t.Fatal(err)
	}
	if err := WriteU16(buf, 0x1234); err != nil {
		t.Fatal(err)
	}
	if err := WriteF64(buf, 3.25); err != nil {
		t.Fatal(err)
	}
	if err := WriteLPString(buf, "hello"); err != nil {
		t.Fatal(err)
	}
	if err := WriteUintLE(buf, 0x0102030405, 5); err != nil {
		t.Fatal(err)
	}

	r := NewMemReader(buf.Bytes())
	u8, err := ReadU8(r)
	if err != nil || u8 != 0xAB {
		t.Fatalf("ReadU8 = %v, %v", u8, err)
	}
	u16, err := ReadU16(r)
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadU16 = %v, %v", u16, err)
	}
	f64, err := ReadF64(r)
	if err != nil || f64 != 3.25 {
		t.Fatalf("ReadF64 = %v, %v", f64, err)
	}
	s, err := ReadLPString(r)
	if err != nil || s != "hello" {
		t.Fatalf("ReadLPString = %q, %v", s, err)
	}
	v, err := ReadUintLE(r, 5)
	if err != nil || v != 0x0102030405 {
		t.Fatalf("ReadUintLE = %x, %v", v, err)
	}
}

func TestReadTruncatedReturnsFormatError(t *testing.T) {
	r := bytes.NewReader([]byte{0x01})
	if _, err := ReadU16(r); err == nil {
		t.Fatal("expected error on truncated read")
	} else if _, ok := err.(*FormatError); !ok {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
}

func TestCompressedFileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/tree.ghtz"
	w, err := OpenCompressedFileWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte("abcdefgh"), 1024)
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenCompressedFileReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var out bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		out.Write(buf[:n])
		if err != nil {
			break
		}
	}
	if !bytes.Equal(out.Bytes(), payload) {
		t.Fatalf("compressed round trip mismatch: got %d bytes, want %d", out.Len(), len(payload))
	}
}
