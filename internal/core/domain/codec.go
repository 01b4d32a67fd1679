package domain

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func putKey(dst []byte, v solana.PublicKey, offset *int) {
	copy(dst[*offset:], v[:])
	*offset += solana.PublicKeyLength
}
func getKey(src []byte, dst *solana.PublicKey, offset *int) {
	copy(dst[:], src[*offset:*offset+solana.PublicKeyLength])
	*offset += solana.PublicKeyLength
}

func putOptionalKey(dst []byte, v *solana.PublicKey, offset *int) {
	if v == nil {
		putUint32(dst, 0, offset)
		*offset += solana.PublicKeyLength
		return
	}
	putUint32(dst, 1, offset)
	putKey(dst, *v, offset)
}
func getOptionalKey(src []byte, dst **solana.PublicKey, offset *int) {
	var tag uint32
	getUint32(src, &tag, offset)
	if tag == 0 {
		*dst = nil
		*offset += solana.PublicKeyLength
		return
	}
	key := solana.PublicKey{}
	getKey(src, &key, offset)
	*dst = &key
}

func putOptionalUint64(dst []byte, v *uint64, offset *int) {
	if v == nil {
		putUint32(dst, 0, offset)
		*offset += 8
		return
	}
	putUint32(dst, 1, offset)
	putUint64(dst, *v, offset)
}
func getOptionalUint64(src []byte, dst **uint64, offset *int) {
	var tag uint32
	getUint32(src, &tag, offset)
	if tag == 0 {
		*dst = nil
		*offset += 8
		return
	}
	var v uint64
	getUint64(src, &v, offset)
	*dst = &v
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}
func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}
func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func putBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}
func getBool(src []byte, dst *bool, offset *int) {
	*dst = src[*offset] != 0
	*offset += 1
}
