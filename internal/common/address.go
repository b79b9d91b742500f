package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
)

func IsSameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// EthereumAddress resolves a chain account address to its hex form. An
// address already prefixed 0x passes through unchanged; a bech32 address
// is decoded through its words and re-encoded as 0x-prefixed hex.
func EthereumAddress(addr string) (string, error) {
	if strings.HasPrefix(addr, "0x") {
		return addr, nil
	}

	_, words, err := bech32.Decode(addr)
	if err != nil {
		return "", err
	}

	b, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("0x%s", hex.EncodeToString(b)), nil
}
