package usdmock

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/shengtuo-tech/equity-contract/common"
)

const (
	symbolKey   = "symbol"
	decimalsKey = "decimals"
	supplyKey   = "totalSupply"

	balancePrefix   = 'b'
	allowancePrefix = 'a'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}
	ctx := storage.GetContext()

	args := data.(struct {
		symbol    string
		decimals  int
		recipient interop.Hash160
		supply    int
	})

	if len(args.recipient) != interop.Hash160Len {
		panic("incorrect length of recipient script hash")
	}
	if args.decimals < 0 || args.supply < 0 {
		panic("invalid token parameters")
	}

	storage.Put(ctx, symbolKey, args.symbol)
	storage.Put(ctx, decimalsKey, args.decimals)
	storage.Put(ctx, supplyKey, args.supply)
	storage.Put(ctx, balanceKey(args.recipient), args.supply)
	runtime.Notify("Transfer", interop.Hash160(nil), args.recipient, args.supply)
}

// Symbol is a NEP-17 standard method that returns the configured symbol.
func Symbol() string {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, symbolKey).(string)
}

// Decimals is a NEP-17 standard method that returns the precision configured
// at deploy time.
func Decimals() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, decimalsKey)
}

// TotalSupply is a NEP-17 standard method that returns the fixed supply.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, supplyKey)
}

// BalanceOf is a NEP-17 standard method that returns the balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, balanceKey(account))
}

// Transfer is a NEP-17 standard method that moves amount between accounts.
// It can be invoked by the account owner or by the account itself when it is
// a contract.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount < 0 {
		panic("invalid amount")
	}
	common.CheckWitness(from)

	move(ctx, from, to, amount)
	return true
}

// Approve authorizes spender to move up to amount of the owner's token with
// TransferFrom.
func Approve(owner, spender interop.Hash160, amount int) {
	ctx := storage.GetContext()
	if len(owner) != interop.Hash160Len || len(spender) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount < 0 {
		panic("invalid amount")
	}
	common.CheckWitness(owner)

	storage.Put(ctx, allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)
}

// Allowance returns the remaining amount spender may move on behalf of
// owner.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, allowanceKey(owner, spender))
}

// TransferFrom moves amount between accounts on behalf of the account owner,
// consuming the allowance granted to spender.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	if len(spender) != interop.Hash160Len || len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount < 0 {
		panic("invalid amount")
	}
	common.CheckWitness(spender)

	key := allowanceKey(from, spender)
	remaining := common.GetInt(ctx, key)
	if remaining < amount {
		panic("insufficient allowance")
	}
	if remaining == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, remaining-amount)
	}

	move(ctx, from, to, amount)
	return true
}

func move(ctx storage.Context, from, to interop.Hash160, amount int) {
	fromBalance := common.GetInt(ctx, balanceKey(from))
	if fromBalance < amount {
		panic("insufficient balance")
	}

	if fromBalance == amount {
		storage.Delete(ctx, balanceKey(from))
	} else {
		storage.Put(ctx, balanceKey(from), fromBalance-amount)
	}
	storage.Put(ctx, balanceKey(to), common.GetInt(ctx, balanceKey(to))+amount)

	runtime.Notify("Transfer", from, to, amount)
}

func balanceKey(holder interop.Hash160) []byte {
	return append([]byte{balancePrefix}, holder...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}
