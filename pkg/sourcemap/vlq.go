package sourcemap

import (
	"errors"
	"fmt"
)

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Values = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := range len(base64Digits) {
		table[base64Digits[i]] = int8(i)
	}
	return table
}()

// ErrInvalidVLQ is returned when a mappings string is malformed.
var ErrInvalidVLQ = errors.New("invalid VLQ data")

// AppendVLQ appends the base64 VLQ encoding of value to buf.
//
// The sign lives in the least significant bit of the first digit; each digit carries
// five bits of payload and a continuation bit.
func AppendVLQ(buf []byte, value int) []byte {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	for {
		digit := vlq & 31
		vlq >>= 5
		if vlq != 0 {
			digit |= 32
		}
		buf = append(buf, base64Digits[digit])
		if vlq == 0 {
			return buf
		}
	}
}

// DecodeVLQ decodes one value from the front of encoded and returns it with the
// number of bytes consumed.
func DecodeVLQ(encoded string) (int, int, error) {
	var vlq, shift int
	for i := range len(encoded) {
		digit := base64Values[encoded[i]]
		if digit < 0 {
			return 0, 0, fmt.Errorf("%w: unexpected %q", ErrInvalidVLQ, encoded[i])
		}
		vlq |= int(digit&31) << shift
		shift += 5
		if digit&32 == 0 {
			value := vlq >> 1
			if vlq&1 != 0 {
				value = -value
			}
			return value, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: truncated value", ErrInvalidVLQ)
}
