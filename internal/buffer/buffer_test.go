package buffer

import "testing"

func TestBytesGrowsAndReads(t *testing.T) {
	b := NewBytes(1)
	for i := 0; i < 300; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	if b.Len() != 300 {
		t.Fatalf("Len() = %d, want 300", b.Len())
	}
	if b.At(0) != 'a' || b.At(1) != 'b' {
		t.Fatalf("At() mismatch: %q %q", b.At(0), b.At(1))
	}
	got := b.Slice(0, 3)
	if string(got) != "abc" {
		t.Fatalf("Slice(0,3) = %q, want abc", got)
	}
}

func TestIndexesPushAndLast(t *testing.T) {
	ix := NewIndexes(0)
	ix.Push(0)
	ix.Push(5)
	ix.Push(11)
	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}
	if ix.Last() != 11 {
		t.Fatalf("Last() = %d, want 11", ix.Last())
	}
	if ix.At(1) != 5 {
		t.Fatalf("At(1) = %d, want 5", ix.At(1))
	}
}

func TestBitsRoundTrip(t *testing.T) {
	bs := NewBits(4)
	want := []bool{true, false, false, true, true, false, true, false, false, true, false, true, true, true, false, false, true}
	for _, v := range want {
		bs.Push(v)
	}
	if bs.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", bs.Len(), len(want))
	}
	for i, v := range want {
		if bs.Get(i) != v {
			t.Errorf("Get(%d) = %v, want %v", i, bs.Get(i), v)
		}
	}
	bs.Set(0, false)
	if bs.Get(0) != false {
		t.Errorf("Set(0,false) did not take effect")
	}
	bs.Set(3, true)
	if bs.Get(3) != true {
		t.Errorf("Set(3,true) did not take effect")
	}
}
