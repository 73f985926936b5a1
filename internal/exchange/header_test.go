package exchange

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestHeaderSize(t *testing.T) {
	cases := []struct {
		ndims int
		want  int
	}{
		{1, 64},  // 16 + 8 = 24 -> 64
		{2, 64},  // 16 + 16 = 32 -> 64
		{6, 64},  // 16 + 48 = 64 -> 64
		{7, 128}, // 16 + 56 = 72 -> 128
		{14, 128},
		{15, 192},
	}
	for _, tt := range cases {
		if got := HeaderSize(tt.ndims); got != tt.want {
			t.Errorf("HeaderSize(%d) = %d, want %d", tt.ndims, got, tt.want)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	kinds := []Kind{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64,
		Float32, Float64, Complex64, Complex128}
	shapes := []Shape{{1}, {7}, {10, 2}, {2, 3, 4}, {1, 1, 1, 1, 1, 1, 1}}

	for _, kind := range kinds {
		for _, shape := range shapes {
			offset := HeaderSize(len(shape))
			block := make([]byte, offset+shape.NumElements()*kind.Size())

			wrote, err := EncodeHeader(block, kind, shape)
			if err != nil {
				t.Fatalf("EncodeHeader(%s, %v) failed: %v", kind, shape, err)
			}
			if wrote != offset {
				t.Errorf("EncodeHeader(%s, %v) offset = %d, want %d", kind, shape, wrote, offset)
			}

			gotKind, gotShape, gotOffset, err := DecodeHeader(block)
			if err != nil {
				t.Fatalf("DecodeHeader(%s, %v) failed: %v", kind, shape, err)
			}
			if gotKind != kind {
				t.Errorf("decoded kind = %s, want %s", gotKind, kind)
			}
			if !gotShape.Equal(shape) {
				t.Errorf("decoded shape = %v, want %v", gotShape, shape)
			}
			if gotOffset != offset {
				t.Errorf("decoded offset = %d, want %d", gotOffset, offset)
			}
		}
	}
}

func TestHeaderSpecExample(t *testing.T) {
	// float64 payload of shape (10, 2): header 16 + 2*8 = 32 rounds to 64,
	// total 64 + 160 = 224 bytes.
	shape := Shape{10, 2}
	if got := HeaderSize(len(shape)); got != 64 {
		t.Fatalf("HeaderSize(2) = %d, want 64", got)
	}
	block := make([]byte, 224)
	offset, err := EncodeHeader(block, Float64, shape)
	if err != nil {
		t.Fatalf("EncodeHeader failed: %v", err)
	}
	if offset != 64 {
		t.Errorf("offset = %d, want 64", offset)
	}

	kind, gotShape, gotOffset, err := DecodeHeader(block)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if kind != Float64 || !gotShape.Equal(shape) || gotOffset != 64 {
		t.Errorf("decoded (%s, %v, %d), want (float64, (10, 2), 64)", kind, gotShape, gotOffset)
	}
}

func TestEncodeHeaderRejectsBadInput(t *testing.T) {
	block := make([]byte, 256)

	if _, err := EncodeHeader(block, Kind(0), Shape{2}); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("unregistered kind error = %v, want ErrUnsupportedKind", err)
	}
	if _, err := EncodeHeader(block, Float32, Shape{}); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("empty shape error = %v, want ErrBadDimensions", err)
	}
	if _, err := EncodeHeader(block, Float32, Shape{0, 3}); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("zero dimension error = %v, want ErrBadDimensions", err)
	}

	// 64 header + 120 payload > 128.
	small := make([]byte, 128)
	if _, err := EncodeHeader(small, Float32, Shape{5, 6}); !errors.Is(err, ErrInsufficientCapacity) {
		t.Errorf("small block error = %v, want ErrInsufficientCapacity", err)
	}
}

func TestDecodeHeaderRejectsCorruption(t *testing.T) {
	valid := func() []byte {
		b := make([]byte, 224)
		if _, err := EncodeHeader(b, Float64, Shape{10, 2}); err != nil {
			t.Fatalf("EncodeHeader failed: %v", err)
		}
		return b
	}

	t.Run("truncated below fixed header", func(t *testing.T) {
		_, _, _, err := DecodeHeader(valid()[:8])
		if !errors.Is(err, ErrInsufficientCapacity) {
			t.Errorf("error = %v, want ErrInsufficientCapacity", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		b := valid()
		b[0] = 'X'
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrBadMagic) {
			t.Errorf("error = %v, want ErrBadMagic", err)
		}
		if !errors.Is(err, ErrFormat) {
			t.Errorf("bad magic should be a format error, got %v", err)
		}
	})

	t.Run("unknown kind id", func(t *testing.T) {
		b := valid()
		binary.LittleEndian.PutUint16(b[4:6], 999)
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrUnknownKindID) {
			t.Errorf("error = %v, want ErrUnknownKindID", err)
		}
	})

	t.Run("zero ndims", func(t *testing.T) {
		b := valid()
		binary.LittleEndian.PutUint16(b[6:8], 0)
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrBadDimensions) {
			t.Errorf("error = %v, want ErrBadDimensions", err)
		}
	})

	t.Run("stored offset disagrees", func(t *testing.T) {
		b := valid()
		binary.LittleEndian.PutUint64(b[8:16], 128)
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrBadOffset) {
			t.Errorf("error = %v, want ErrBadOffset", err)
		}
	})

	t.Run("zero dimension value", func(t *testing.T) {
		b := valid()
		binary.LittleEndian.PutUint64(b[16:24], 0)
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrBadDimensions) {
			t.Errorf("error = %v, want ErrBadDimensions", err)
		}
	})

	t.Run("negative dimension value", func(t *testing.T) {
		b := valid()
		binary.LittleEndian.PutUint64(b[16:24], ^uint64(0)) // -1
		_, _, _, err := DecodeHeader(b)
		if !errors.Is(err, ErrBadDimensions) {
			t.Errorf("error = %v, want ErrBadDimensions", err)
		}
	})

	t.Run("payload truncated", func(t *testing.T) {
		_, _, _, err := DecodeHeader(valid()[:200])
		if !errors.Is(err, ErrInsufficientCapacity) {
			t.Errorf("error = %v, want ErrInsufficientCapacity", err)
		}
	})
}

func TestEncodeHeaderZeroesPadding(t *testing.T) {
	b := make([]byte, 224)
	for i := range b {
		b[i] = 0xAA
	}
	offset, err := EncodeHeader(b, Float64, Shape{10, 2})
	if err != nil {
		t.Fatalf("EncodeHeader failed: %v", err)
	}
	for i := 32; i < offset; i++ {
		if b[i] != 0 {
			t.Fatalf("padding byte %d = %#x, want 0", i, b[i])
		}
	}
}
