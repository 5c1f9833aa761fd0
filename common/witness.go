package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is the storage key under which every contract of the suite keeps
// the script hash of its administrative owner.
const OwnerKey = "contractOwner"

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// ContractOwner returns the owner of the calling contract.
func ContractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// CheckContractOwner checks witness of the calling contract owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckContractOwner(ctx storage.Context) {
	if !runtime.CheckWitness(ContractOwner(ctx)) {
		panic(ErrOwnerWitnessFailed)
	}
}

// SetContractOwner writes newOwner as the owner of the calling contract.
func SetContractOwner(ctx storage.Context, newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	storage.Put(ctx, OwnerKey, newOwner)
}

// CheckWitness checks witness of the passed caller. An account is also
// considered witnessed when the calling contract is the account itself,
// which is how satellite contracts spend allowances granted to them.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	if len(caller) != interop.Hash160Len {
		panic(ErrWitnessFailed)
	}
	if runtime.CheckWitness(caller) {
		return
	}
	if BytesEqual(runtime.GetCallingScriptHash(), caller) {
		return
	}
	panic(ErrWitnessFailed)
}

// BytesEqual compares two slices of bytes by wrapping them into strings,
// which is necessary with new util.Equals interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return string(a) == string(b)
}
