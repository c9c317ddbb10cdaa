package renderer

import (
	"testing"
	"unsafe"
)

func TestTransferByteSizeUsesLayerStrideWhenLayered(t *testing.T) {
	res := &Resource{}
	p := TransferParams{Stride: 16, LayerStride: 256, Box: Box{H: 4, D: 3}}
	if got := transferByteSize(res, p); got != 256*3 {
		t.Errorf("transferByteSize (layered) = %d, want %d", got, 256*3)
	}
}

func TestTransferByteSizeFallsBackToStrideTimesHeight(t *testing.T) {
	res := &Resource{}
	p := TransferParams{Stride: 16, Box: Box{H: 4, D: 1}}
	if got := transferByteSize(res, p); got != 64 {
		t.Errorf("transferByteSize (flat) = %d, want 64", got)
	}
}

func TestScaleDepth24RoundTrip(t *testing.T) {
	data := make([]byte, 4)
	*(*uint32)(unsafe.Pointer(&data[0])) = 1000
	scaleDepth24(data, 256)
	scaled := *(*uint32)(unsafe.Pointer(&data[0]))
	if scaled != 256000 {
		t.Fatalf("scaleDepth24(x256) = %d, want 256000", scaled)
	}
	scaleDepth24(data, 1.0/256)
	back := *(*uint32)(unsafe.Pointer(&data[0]))
	if back != 1000 {
		t.Errorf("scaleDepth24(x1/256) round trip = %d, want 1000", back)
	}
}

func TestFlipRowsReversesRowOrder(t *testing.T) {
	// 3 rows of 2 bytes each: [0,1] [2,3] [4,5]
	data := []byte{0, 1, 2, 3, 4, 5}
	flipped := flipRows(data, 2, 3)
	want := []byte{4, 5, 2, 3, 0, 1}
	for i := range want {
		if flipped[i] != want[i] {
			t.Fatalf("flipRows = %v, want %v", flipped, want)
		}
	}
}

func TestFlipRowsNoopOnZeroStrideOrHeight(t *testing.T) {
	data := []byte{1, 2, 3}
	if got := flipRows(data, 0, 3); len(got) != len(data) {
		t.Errorf("flipRows with stride=0 should return input length unchanged")
	}
	if got := flipRows(data, 3, 0); len(got) != len(data) {
		t.Errorf("flipRows with height=0 should return input length unchanged")
	}
}

func TestGatherIovecsSkipsAndConcatenates(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6, 7, 8}
	iovs := []Iovec{
		{Base: uintptr(unsafe.Pointer(&a[0])), Len: uint32(len(a))},
		{Base: uintptr(unsafe.Pointer(&b[0])), Len: uint32(len(b))},
	}
	got, err := gatherIovecs(iovs, 2, 4)
	if err != nil {
		t.Fatalf("gatherIovecs: %v", err)
	}
	want := []byte{3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("gatherIovecs len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gatherIovecs[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGatherIovecsErrorsWhenShort(t *testing.T) {
	a := []byte{1, 2}
	iovs := []Iovec{{Base: uintptr(unsafe.Pointer(&a[0])), Len: uint32(len(a))}}
	if _, err := gatherIovecs(iovs, 0, 10); err == nil {
		t.Errorf("gatherIovecs should error when iovecs cover less than requested")
	}
}

func TestBytesAddrEmptyIsZero(t *testing.T) {
	if got := bytesAddr(nil); got != 0 {
		t.Errorf("bytesAddr(nil) = %d, want 0", got)
	}
	b := []byte{1}
	if got := bytesAddr(b); got == 0 {
		t.Errorf("bytesAddr(non-empty) should not be 0")
	}
}
