package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	_cbor "github.com/fxamacker/cbor/v2"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// EncodeCbor encodes v with core deterministic encoding. Like DecodeHexString,
// it panics on error so it can be used inline in test tables
func EncodeCbor(v any) []byte {
	em, err := _cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("error creating CBOR encoder: %s", err))
	}
	data, err := em.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("error encoding CBOR: %s", err))
	}
	return data
}
