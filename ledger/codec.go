package ledger

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ElrondNetwork/elrond-sdk/erdgo/data"
)

const (
	argSeparator = "@"
	addressLen   = 32
)

func hexUint(v uint64) string {
	return hex.EncodeToString(big.NewInt(0).SetUint64(v).Bytes())
}

func hexString(s string) string {
	return hex.EncodeToString([]byte(s))
}

// callData builds the "endpoint@arg@arg" data field of a contract call.
func callData(endpoint string, argsHex ...string) []byte {
	if len(argsHex) == 0 {
		return []byte(endpoint)
	}
	return []byte(endpoint + argSeparator + strings.Join(argsHex, argSeparator))
}

func decodeBigUint(b []byte) *big.Int {
	return big.NewInt(0).SetBytes(b)
}

func decodeUint64(b []byte) (uint64, error) {
	v := decodeBigUint(b)
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: value %s overflows uint64", ErrMalformedReturnData, v.String())
	}
	return v.Uint64(), nil
}

func decodeBool(b []byte) (bool, error) {
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bad bool %x", ErrMalformedReturnData, b)
	}
}

func decodeAddress(b []byte) (string, error) {
	if len(b) != addressLen {
		return "", fmt.Errorf("%w: address of %d bytes", ErrMalformedReturnData, len(b))
	}
	return data.NewAddressFromBytes(b).AddressAsBech32String(), nil
}

// decodeBountyDetails splits the flat return data of getBountyDetailAll into
// its four consecutive sections.
func decodeBountyDetails(returnData [][]byte) (BountyDetails, error) {
	if len(returnData)%4 != 0 {
		return BountyDetails{}, fmt.Errorf("%w: %d items is not four equal sections",
			ErrMalformedReturnData, len(returnData))
	}

	n := len(returnData) / 4
	details := BountyDetails{
		Indexes: make([]uint64, n),
		IsOpen:  make([]bool, n),
		Owners:  make([]string, n),
		Values:  make([]*big.Int, n),
	}

	var err error
	for i := 0; i < n; i++ {
		details.Indexes[i], err = decodeUint64(returnData[i])
		if err != nil {
			return BountyDetails{}, err
		}
		details.IsOpen[i], err = decodeBool(returnData[n+i])
		if err != nil {
			return BountyDetails{}, err
		}
		details.Owners[i], err = decodeAddress(returnData[2*n+i])
		if err != nil {
			return BountyDetails{}, err
		}
		details.Values[i] = decodeBigUint(returnData[3*n+i])
	}

	return details, nil
}
