package secret

import "testing"

func TestFromStringZeroPads(t *testing.T) {
	s, err := FromString("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := s.Bytes()
	if string(b[:5]) != "alice" {
		t.Fatalf("expected prefix alice, got %q", b[:5])
	}
	for i := 5; i < 32; i++ {
		if b[i] != 0 {
			t.Fatalf("expected zero padding at byte %d, got %d", i, b[i])
		}
	}
}

func TestFromStringTooLong(t *testing.T) {
	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := FromString(string(long)); err != ErrStringTooLong {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestFromUint64LittleEndian(t *testing.T) {
	s := FromUint64(1)
	b := s.Bytes()
	if b[0] != 1 {
		t.Fatalf("expected little-endian byte 0 == 1, got %d", b[0])
	}
	for i := 1; i < 32; i++ {
		if b[i] != 0 {
			t.Fatalf("expected zero byte at %d, got %d", i, b[i])
		}
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	var raw [32]byte
	raw[31] = 0xFF
	s := FromBytes(raw)
	if s.Bytes() != raw {
		t.Fatalf("expected round trip through FromBytes/Bytes")
	}
}
