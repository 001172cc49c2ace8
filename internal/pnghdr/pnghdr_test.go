package pnghdr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// minimalPNG returns the signature, an IHDR chunk prefix with the given
// dimensions, and the remaining IHDR fields plus a dummy CRC.
func minimalPNG(tag string, w, h uint32) []byte {
	var b bytes.Buffer
	b.Write(Signature[:])
	binary.Write(&b, binary.BigEndian, uint32(13))
	b.WriteString(tag)
	binary.Write(&b, binary.BigEndian, w)
	binary.Write(&b, binary.BigEndian, h)
	b.Write([]byte{8, 6, 0, 0, 0})
	b.Write([]byte{0, 0, 0, 0})
	return b.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestReadFile_Dimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h uint32
	}{
		{"hero", 128, 64},
		{"square", 1, 1},
		{"strip", 4096, 256},
		{"tall", 32, 1024},
		{"max", 0xffffffff, 0xfffffffe},
		{"high bit", 0x80000000, 0x00010001},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".png", minimalPNG("IHDR", tt.w, tt.h))
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if got.Width != tt.w || got.Height != tt.h {
				t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, tt.w, tt.h)
			}
		})
	}
}

func TestRead_StopsAfterDimensions(t *testing.T) {
	// Only the first 24 bytes are needed; CRC and later chunks are ignored.
	data := minimalPNG("IHDR", 10, 20)[:24]
	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != (Header{Width: 10, Height: 20}) {
		t.Errorf("got %+v", got)
	}
}

func TestRead_CorruptSignature(t *testing.T) {
	valid := minimalPNG("IHDR", 128, 64)
	for i := 0; i < len(Signature); i++ {
		data := bytes.Clone(valid)
		data[i] ^= 0xff
		got, err := Read(bytes.NewReader(data))
		if err == nil {
			t.Fatalf("byte %d altered: expected error", i)
		}
		if !IsFormatError(err) || !errors.Is(err, ErrBadSignature) {
			t.Errorf("byte %d altered: got %v, want bad signature FormatError", i, err)
		}
		if got != (Header{}) {
			t.Errorf("byte %d altered: partial result %+v", i, got)
		}
	}
}

func TestRead_TruncatedSignature(t *testing.T) {
	for n := 0; n < len(Signature); n++ {
		got, err := Read(bytes.NewReader(Signature[:n]))
		if err == nil {
			t.Fatalf("len %d: expected error", n)
		}
		if !errors.Is(err, ErrBadSignature) {
			t.Errorf("len %d: got %v, want ErrBadSignature", n, err)
		}
		if got != (Header{}) {
			t.Errorf("len %d: partial result %+v", n, got)
		}
	}
}

func TestRead_WrongChunkTag(t *testing.T) {
	for _, tag := range []string{"IDAT", "ihdr", "tEXt", "IHDX"} {
		_, err := Read(bytes.NewReader(minimalPNG(tag, 1, 1)))
		if !IsFormatError(err) || !errors.Is(err, ErrMissingIHDR) {
			t.Errorf("tag %q: got %v, want missing IHDR FormatError", tag, err)
		}
	}
}

func TestRead_ShortAfterSignature(t *testing.T) {
	valid := minimalPNG("IHDR", 300, 200)
	for _, n := range []int{8, 11, 12, 16, 19, 23} {
		got, err := Read(bytes.NewReader(valid[:n]))
		if err == nil {
			t.Fatalf("len %d: expected error", n)
		}
		if !IsIOError(err) {
			t.Errorf("len %d: got %T %v, want IOError", n, err, err)
		}
		if got != (Header{}) {
			t.Errorf("len %d: partial result %+v", n, got)
		}
	}
}

func TestReadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.png")
	_, err := ReadFile(path)
	if !IsIOError(err) {
		t.Fatalf("got %v, want IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestReadFile_ErrorNamesPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.png", []byte("hello world, not an image"))
	_, err := ReadFile(path)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *FormatError", err)
	}
	if fe.Path != path {
		t.Errorf("Path = %q, want %q", fe.Path, path)
	}
}
