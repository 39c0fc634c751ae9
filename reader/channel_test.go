package reader

import (
	"bytes"
	"io"
	"testing"

	"github.com/coregx/byteseek/cache"
)

func TestChannel_ReadAdvancesPosition(t *testing.T) {
	data := testData(1000)
	r, _ := NewByteArrayReaderWith(data, 128, cache.NewAllCache())
	c := NewChannel(r)

	first := make([]byte, 300)
	read, err := c.Read(first)
	if err != nil || read != 300 {
		t.Fatalf("first read failed: %d, %v", read, err)
	}
	if !bytes.Equal(first, data[:300]) {
		t.Error("first read bytes differ from source")
	}
	if c.Position() != 300 {
		t.Errorf("position should be 300, got %d", c.Position())
	}

	second := make([]byte, 300)
	if read, err = c.Read(second); err != nil || read != 300 {
		t.Fatalf("second read failed: %d, %v", read, err)
	}
	if !bytes.Equal(second, data[300:600]) {
		t.Error("second read bytes differ from source")
	}
}

func TestChannel_SeekAndSize(t *testing.T) {
	data := testData(1000)
	r, _ := NewByteArrayReaderWith(data, 128, cache.NewAllCache())
	c := NewChannel(r)

	size, err := c.Size()
	if err != nil || size != 1000 {
		t.Fatalf("size should be 1000, got %d (%v)", size, err)
	}

	if pos, err := c.Seek(500, io.SeekStart); err != nil || pos != 500 {
		t.Fatalf("seek start failed: %d, %v", pos, err)
	}
	if pos, err := c.Seek(-100, io.SeekCurrent); err != nil || pos != 400 {
		t.Fatalf("seek current failed: %d, %v", pos, err)
	}
	if pos, err := c.Seek(-1, io.SeekEnd); err != nil || pos != 999 {
		t.Fatalf("seek end failed: %d, %v", pos, err)
	}

	one := make([]byte, 1)
	if read, err := c.Read(one); read != 1 && err != nil {
		t.Fatalf("read of final byte failed: %d, %v", read, err)
	}
	if one[0] != data[999] {
		t.Errorf("final byte should be %#x, got %#x", data[999], one[0])
	}

	// Positioning past the end is legal; reading there reports EOF.
	if _, err := c.Seek(5000, io.SeekStart); err != nil {
		t.Fatalf("seek past end should be legal: %v", err)
	}
	if read, err := c.Read(one); read != 0 || err != io.EOF {
		t.Errorf("read past end should be 0, io.EOF; got %d, %v", read, err)
	}

	if _, err := c.Seek(-1, io.SeekStart); err == nil {
		t.Error("seek to a negative position should fail")
	}
}

func TestChannel_NotWritable(t *testing.T) {
	r := NewByteArrayReader(testData(100))
	c := NewChannel(r)

	if _, err := c.Write([]byte("nope")); err != ErrNotWritable {
		t.Errorf("write should fail with ErrNotWritable, got %v", err)
	}
	if err := c.Truncate(10); err != ErrNotWritable {
		t.Errorf("truncate should fail with ErrNotWritable, got %v", err)
	}
}

func TestChannel_CloseDoesNotCloseReader(t *testing.T) {
	r := NewByteArrayReader(testData(100))
	c := NewChannel(r)

	if !c.IsOpen() {
		t.Error("new channel should be open")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if c.IsOpen() {
		t.Error("closed channel should report closed")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second close should be a no-op: %v", err)
	}

	if _, err := c.Read(make([]byte, 1)); err != ErrChannelClosed {
		t.Errorf("read on a closed channel should fail with ErrChannelClosed, got %v", err)
	}
	if _, err := c.Seek(0, io.SeekStart); err != ErrChannelClosed {
		t.Errorf("seek on a closed channel should fail with ErrChannelClosed, got %v", err)
	}

	// The underlying reader is unaffected.
	if _, err := r.Byte(50); err != nil {
		t.Errorf("reader should remain usable after channel close: %v", err)
	}
}
