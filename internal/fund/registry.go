package fund

import "github.com/qwertyexchange/cryptopawn/pkg/pawn"

// Registry maps token denoms to their declared decimal precision. A denom
// that is not registered is a hard failure for any conversion, never a
// silent default.
type Registry struct {
	nativeDenom string
	decimals    map[string]int32
}

func NewRegistry(nativeDenom string, nativeDecimals int32) *Registry {
	return &Registry{
		nativeDenom: nativeDenom,
		decimals: map[string]int32{
			nativeDenom: nativeDecimals,
		},
	}
}

func (r *Registry) Register(denom string, decimals int32) {
	r.decimals[denom] = decimals
}

// NativeDenom is the network fee denom, used for the explicit
// empty-funds marker.
func (r *Registry) NativeDenom() string {
	return r.nativeDenom
}

func (r *Registry) Decimals(denom string) (int32, error) {
	d, ok := r.decimals[denom]
	if !ok {
		return 0, &pawn.UnknownTokenError{Denom: denom}
	}

	return d, nil
}
