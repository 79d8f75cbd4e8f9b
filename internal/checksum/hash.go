// Package checksum fingerprints element runs so tests can compare container
// contents against a reference without element-by-element assertions.
package checksum

import (
	"unsafe"

	"github.com/minio/highwayhash"
)

// key is fixed. Fingerprints only ever compare within a single process.
var key [32]byte

// Hash returns the highwayhash checksum of data.
func Hash(data []byte) uint64 {
	return highwayhash.Sum64(data, key[:])
}

// Of fingerprints a slice of fixed-size elements by hashing their raw bytes.
// T must not contain pointers.
func Of[T any](s []T) uint64 {
	if len(s) == 0 {
		return Hash(nil)
	}
	size := len(s) * int(unsafe.Sizeof(s[0]))
	return Hash(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size))
}
