package byteutil

import "testing"

func TestBitCounts(t *testing.T) {
	tests := []struct {
		value byte
		set   int
	}{
		{0x00, 0}, {0xFF, 8}, {0x0F, 4}, {0x80, 1}, {0xAA, 4},
	}
	for _, test := range tests {
		if got := CountSetBits(test.value); got != test.set {
			t.Errorf("CountSetBits(%#x) = %d, want %d", test.value, got, test.set)
		}
		if got := CountUnsetBits(test.value); got != 8-test.set {
			t.Errorf("CountUnsetBits(%#x) = %d, want %d", test.value, got, 8-test.set)
		}
	}
}

func TestByteToString(t *testing.T) {
	if got := ByteToString(false, 'A'); got != "41" {
		t.Errorf("plain form should be hex, got %q", got)
	}
	if got := ByteToString(true, 'A'); got != "'A'" {
		t.Errorf("pretty form of a printable byte should be quoted, got %q", got)
	}
	if got := ByteToString(true, 0x0A); got != "0a" {
		t.Errorf("pretty form of a control byte should stay hex, got %q", got)
	}
	if got := ByteToString(true, '\''); got != "27" {
		t.Errorf("quote characters should stay hex, got %q", got)
	}
}

func TestBytesToString(t *testing.T) {
	values := []byte{'A', 0x0A, 'Z'}
	if got := BytesToString(false, values); got != "410a5a" {
		t.Errorf("plain form wrong: %q", got)
	}
	if got := BytesToString(true, values); got != "'A' 0a 'Z'" {
		t.Errorf("pretty form wrong: %q", got)
	}
}
