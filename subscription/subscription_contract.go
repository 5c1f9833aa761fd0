package subscription

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/shengtuo-tech/equity-contract/common"
)

const (
	stetContractKey = "equityTokenScriptHash"
	stetTreasuryKey = "stetTreasury"
	treasuryKey     = "paymentTreasury"
	usdtContractKey = "usdtScriptHash"
	usdcContractKey = "usdcScriptHash"

	usdCapKey      = "usdCap"
	totalRaisedKey = "totalRaised"

	// stetPerUSD is the fixed exchange rate, 10 STET per one normalized
	// payment unit.
	stetPerUSD = 10

	// paymentDecimals is the only stablecoin precision the contract
	// accepts. Accounting is normalized to this fixed point and the
	// contract refuses to rescale.
	paymentDecimals = 18
)

var (
	// ErrCapReached appears when a purchase would push the cumulative
	// accepted payment above the configured lifetime cap.
	ErrCapReached = "cap reached"
	// ErrDecimalsMismatch appears when a configured payment currency does
	// not report exactly 18 decimal places.
	ErrDecimalsMismatch = "decimals != 18"
	// ErrPaymentFailed appears when the payment currency transfer
	// returns false instead of aborting.
	ErrPaymentFailed = "payment transfer failed"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrSTET     interop.Hash160
		stetTreasury interop.Hash160
		treasury     interop.Hash160
		addrUSDT     interop.Hash160
		addrUSDC     interop.Hash160
		owner        interop.Hash160
	})

	if len(args.addrSTET) != interop.Hash160Len ||
		len(args.addrUSDT) != interop.Hash160Len ||
		len(args.addrUSDC) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}
	if len(args.stetTreasury) != interop.Hash160Len ||
		len(args.treasury) != interop.Hash160Len {
		panic("incorrect length of treasury script hash")
	}
	common.SetContractOwner(ctx, args.owner)

	storage.Put(ctx, stetContractKey, args.addrSTET)
	storage.Put(ctx, stetTreasuryKey, args.stetTreasury)
	storage.Put(ctx, treasuryKey, args.treasury)
	storage.Put(ctx, usdtContractKey, args.addrUSDT)
	storage.Put(ctx, usdcContractKey, args.addrUSDC)

	runtime.Log("subscription contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("subscription contract updated")
}

// SubscribeUSDT sells equity token for the configured USDT currency. See
// subscribe for the shared semantics of both entry points.
func SubscribeUSDT(buyer interop.Hash160, payAmount int) {
	subscribe(buyer, payAmount, usdtContractKey)
}

// SubscribeUSDC sells equity token for the configured USDC currency. See
// subscribe for the shared semantics of both entry points.
func SubscribeUSDC(buyer interop.Hash160, payAmount int) {
	subscribe(buyer, payAmount, usdcContractKey)
}

// subscribe is the single parametrized purchase routine behind both public
// entry points. It checks the currency precision and the lifetime cap, pulls
// payment from the buyer to the payment treasury through the currency's own
// allowance mechanics, then moves payAmount×10 equity token from the token
// treasury to the buyer through the token's transferFrom, so the token's
// pause/blacklist/whitelist policy applies to both parties of that movement.
// Errors of either token propagate as is. The raised counter is updated
// after every movement succeeded, a failed call leaves it untouched.
//
// It produces SubscriptionCreated notification.
func subscribe(buyer interop.Hash160, payAmount int, currencyKey string) {
	ctx := storage.GetContext()
	if len(buyer) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if payAmount <= 0 {
		panic("invalid payment amount")
	}
	common.CheckWitness(buyer)

	currency := storage.Get(ctx, currencyKey).(interop.Hash160)
	dec := contract.Call(currency, "decimals", contract.ReadOnly).(int)
	if dec != paymentDecimals {
		panic(ErrDecimalsMismatch)
	}

	raised := common.GetInt(ctx, totalRaisedKey)
	capLimit := common.GetInt(ctx, usdCapKey)
	if capLimit > 0 && raised+payAmount > capLimit {
		panic(ErrCapReached)
	}

	self := runtime.GetExecutingScriptHash()
	treasury := storage.Get(ctx, treasuryKey).(interop.Hash160)
	ok := contract.Call(currency, "transferFrom", contract.All,
		self, buyer, treasury, payAmount, nil).(bool)
	if !ok {
		panic(ErrPaymentFailed)
	}

	stetAmount := payAmount * stetPerUSD
	stet := storage.Get(ctx, stetContractKey).(interop.Hash160)
	stetTreasury := storage.Get(ctx, stetTreasuryKey).(interop.Hash160)
	contract.Call(stet, "transferFrom", contract.All,
		self, stetTreasury, buyer, stetAmount, nil)

	storage.Put(ctx, totalRaisedKey, raised+payAmount)

	runtime.Notify("SubscriptionCreated", buyer, currency, payAmount, stetAmount)
}

// SetUsdCap18 sets the lifetime cap on accepted payment in 18-decimal
// normalized units. Zero removes the cap. The cap may be set below the
// amount already raised, which simply blocks all further purchases. It can
// be invoked only by the contract owner.
//
// It produces CapUpdated notification.
func SetUsdCap18(newCap int) {
	ctx := storage.GetContext()
	if newCap < 0 {
		panic("invalid cap")
	}
	common.CheckContractOwner(ctx)
	storage.Put(ctx, usdCapKey, newCap)
	runtime.Notify("CapUpdated", newCap)
}

// UsdCap18 returns the lifetime cap on accepted payment in 18-decimal
// normalized units. Zero means the cap is not set.
func UsdCap18() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, usdCapKey)
}

// TotalRaised18 returns the cumulative accepted payment in 18-decimal
// normalized units. It never decreases.
func TotalRaised18() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalRaisedKey)
}

// StetContract returns the script hash of the equity token being sold.
func StetContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, stetContractKey).(interop.Hash160)
}

// TransferOwnership hands the administrative role over to newOwner. It can
// be invoked only by the current contract owner.
//
// It produces OwnershipTransferred notification.
func TransferOwnership(newOwner interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	previous := common.ContractOwner(ctx)
	common.SetContractOwner(ctx, newOwner)
	runtime.Notify("OwnershipTransferred", previous, newOwner)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}
