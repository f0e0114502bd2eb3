package ringbuf

import "testing"

func TestWriteReadOrder(t *testing.T) {
	r := New(4)
	for i := byte(1); i <= 4; i++ {
		if !r.Write(i) {
			t.Fatalf("Write(%d) failed with %d free", i, r.Writable())
		}
	}
	if r.Write(5) {
		t.Error("Write succeeded on a full buffer")
	}
	if r.Readable() != 4 || r.Writable() != 0 {
		t.Errorf("readable/writable = %d/%d, want 4/0", r.Readable(), r.Writable())
	}
	for i := byte(1); i <= 4; i++ {
		if b := r.ImmediateRead(); b != i {
			t.Errorf("read = %d, want %d", b, i)
		}
	}
	if r.Readable() != 0 || r.Writable() != 4 {
		t.Errorf("readable/writable = %d/%d, want 0/4", r.Readable(), r.Writable())
	}
}

func TestWraparound(t *testing.T) {
	r := New(3)
	// Interleave writes and reads so the indices wrap several times.
	next := byte(0)
	expect := byte(0)
	for i := 0; i < 20; i++ {
		if !r.Write(next) {
			t.Fatalf("Write failed at iteration %d", i)
		}
		next++
		if i%2 == 1 {
			for r.Readable() > 0 {
				if b := r.ImmediateRead(); b != expect {
					t.Fatalf("read = %d, want %d", b, expect)
				}
				expect++
			}
		}
	}
}

func TestFlush(t *testing.T) {
	r := New(4)
	r.Write(0xAA)
	r.Write(0xBB)
	r.Flush()
	if r.Readable() != 0 || r.Writable() != 4 {
		t.Errorf("after flush readable/writable = %d/%d, want 0/4", r.Readable(), r.Writable())
	}
	if !r.Write(0xCC) {
		t.Fatal("Write failed after flush")
	}
	if b := r.ImmediateRead(); b != 0xCC {
		t.Errorf("read = 0x%X, want 0xCC", b)
	}
}

func TestCapacity(t *testing.T) {
	r := New(1024)
	if r.Capacity() != 1024 || r.Writable() != 1024 {
		t.Errorf("capacity/writable = %d/%d, want 1024/1024", r.Capacity(), r.Writable())
	}
}
