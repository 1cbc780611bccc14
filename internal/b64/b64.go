// Package b64 encodes binary blobs embedded in entity partition text.
//
// Encoding is standard padded base64. Decoding is lenient the way the game
// tools are: input stops at the first byte outside the alphabet (padding
// included) and a dangling 6-bit group is dropped.
package b64

import "encoding/base64"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var valid = func() (t [256]bool) {
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = true
	}
	return t
}()

// Encode returns the padded base64 form of b.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode decodes s, ignoring everything from the first non-alphabet byte.
func Decode(s string) ([]byte, error) {
	n := 0
	for n < len(s) && valid[s[n]] {
		n++
	}
	s = s[:n]
	if len(s)%4 == 1 {
		s = s[:len(s)-1]
	}
	return base64.RawStdEncoding.DecodeString(s)
}
