package zlite

import (
	"encoding/binary"
	"unsafe"
)

// nativeByteOrder is the CPU's own byte order, detected once at process
// start. The block header is written in the writer's host byte order
// rather than a fixed wire order, an inherited limitation from the original
// implementation (see DESIGN.md) rather than a deliberate design choice, so
// it is reproduced here instead of quietly "fixed" to a portable order.
var nativeByteOrder binary.ByteOrder

func init() {
	var probe uint16 = 1
	if *(*byte)(unsafe.Pointer(&probe)) == 1 {
		nativeByteOrder = binary.LittleEndian
	} else {
		nativeByteOrder = binary.BigEndian
	}
}
