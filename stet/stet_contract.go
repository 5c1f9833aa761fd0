package stet

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/shengtuo-tech/equity-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for total supply value
	SupplyKey string
}

const (
	symbol   = "STET"
	decimals = 18
	supply   = "totalSupply"

	// initialSupplyUnits is multiplied by 10^decimals on deploy.
	initialSupplyUnits = 50_000_000

	balancePrefix   = 'b'
	allowancePrefix = 'a'
	noncePrefix     = 'n'
	blacklistPrefix = 'd'
	whitelistPrefix = 'w'

	pausedKey           = "paused"
	whitelistEnabledKey = "whitelistOn"

	permitMsgPrefix = "STET permit v1:"

	// UnlimitedAllowance is never decremented when spent. NeoVM integers
	// are signed, -1 carries the same bits as the conventional full-width
	// sentinel of other ledgers.
	UnlimitedAllowance = -1
)

var (
	// ErrPaused appears on any balance-changing call while the
	// circuit breaker is on.
	ErrPaused = "contract is paused"
	// ErrSenderBlacklisted appears when the sending party of a transfer
	// is on the blacklist.
	ErrSenderBlacklisted = "Sender is blacklisted"
	// ErrRecipientBlacklisted appears when the receiving party of a
	// transfer is on the blacklist.
	ErrRecipientBlacklisted = "Recipient is blacklisted"
	// ErrSenderNotWhitelisted appears when the whitelist is enabled and
	// the sending party is not on it.
	ErrSenderNotWhitelisted = "Sender is not whitelisted"
	// ErrRecipientNotWhitelisted appears when the whitelist is enabled
	// and the receiving party is not on it.
	ErrRecipientNotWhitelisted = "Recipient is not whitelisted"
	// ErrInsufficientBalance appears when the sending party holds less
	// than the transferred amount.
	ErrInsufficientBalance = "insufficient balance"
	// ErrInsufficientAllowance appears when a spender tries to move more
	// than the holder authorized.
	ErrInsufficientAllowance = "insufficient allowance"
	// ErrExpiredDeadline appears when a permit is submitted after its
	// deadline has passed.
	ErrExpiredDeadline = "expired deadline"
	// ErrInvalidSignature appears when permit signature verification does
	// not yield the claimed owner, including replays of a consumed nonce.
	ErrInvalidSignature = "invalid signature"
	// ErrInvalidAmount appears on negative amounts other than the
	// unlimited allowance sentinel where that sentinel is accepted.
	ErrInvalidAmount = "invalid amount"
)

var token Token

func createToken() Token {
	return Token{
		Symbol:    symbol,
		Decimals:  decimals,
		SupplyKey: supply,
	}
}

func init() {
	token = createToken()
}

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		recipient interop.Hash160
		owner     interop.Hash160
	})

	if len(args.recipient) != interop.Hash160Len {
		panic("incorrect length of recipient script hash")
	}
	common.SetContractOwner(ctx, args.owner)

	initialSupply := initialSupplyUnits
	for i := 0; i < decimals; i++ {
		initialSupply = initialSupply * 10
	}

	storage.Put(ctx, token.SupplyKey, initialSupply)
	storage.Put(ctx, balanceKey(args.recipient), initialSupply)
	runtime.Notify("Transfer", interop.Hash160(nil), args.recipient, initialSupply)

	runtime.Log("equity token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("equity token contract updated")
}

// Symbol is a NEP-17 standard method that returns the equity token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of equity
// token balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of token
// in circulation. It only ever decreases, conversions burn token for good.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the equity token
// balance of the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Owner returns the script hash of the administrative owner.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return common.ContractOwner(ctx)
}

// Paused returns true if balance-changing operations are suspended.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, pausedKey) != nil
}

// WhitelistEnabled returns true if the optional allow-list gates transfers.
func WhitelistEnabled() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, whitelistEnabledKey) != nil
}

// IsBlacklisted returns true if the account is on the blacklist.
func IsBlacklisted(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isListed(ctx, blacklistPrefix, account)
}

// IsWhitelisted returns true if the account is on the whitelist.
func IsWhitelisted(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isListed(ctx, whitelistPrefix, account)
}

// Allowance returns the remaining amount spender is authorized to move on
// behalf of owner. UnlimitedAllowance means no limit.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, allowanceKey(owner, spender))
}

// Nonces returns the next permit nonce of the account.
func Nonces(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, nonceKey(account))
}

// Transfer is a NEP-17 standard method that moves amount of token from one
// account to another. It can be invoked by the account owner or by the
// account itself when it is a contract.
//
// It produces Transfer notification and panics with a policy-specific
// message when the transfer is gated by pause, blacklist or whitelist.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	checkAccounts(from, to)
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(from)

	checkTransferPolicy(ctx, from, to)
	token.transfer(ctx, from, to, amount)
	return true
}

// TransferFrom moves amount of token from one account to another on behalf
// of the account owner, consuming the allowance granted to spender with
// Approve or Permit. It can be invoked by spender only, including the case
// when spender is a calling contract.
//
// It produces Transfer notification and applies the same policy gating as
// Transfer to both from and to.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	checkAccounts(from, to)
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(spender)

	checkTransferPolicy(ctx, from, to)
	spendAllowance(ctx, from, spender, amount)
	token.transfer(ctx, from, to, amount)
	return true
}

// Approve authorizes spender to move up to amount of the owner's token with
// TransferFrom or BurnFrom. The amount of UnlimitedAllowance removes the
// limit. Approval is deliberately not gated by pause or address lists,
// policy applies at movement time.
//
// It produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkAccounts(owner, spender)
	if amount < 0 && amount != UnlimitedAllowance {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(owner)

	putAllowance(ctx, owner, spender, amount)
	runtime.Notify("Approval", owner, spender, amount)
}

// Burn destroys amount of the account's own token, reducing total supply.
// Pause, blacklist and whitelist policy applies with the account as both
// parties of the movement.
//
// It produces Transfer and Burn notifications.
func Burn(from interop.Hash160, amount int) {
	ctx := storage.GetContext()
	if len(from) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(from)

	checkTransferPolicy(ctx, from, from)
	token.burn(ctx, from, amount)
}

// BurnFrom destroys amount of the account's token on behalf of its owner,
// consuming the spender's allowance the way TransferFrom does.
//
// It produces Transfer and Burn notifications.
func BurnFrom(spender, from interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkAccounts(spender, from)
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(spender)

	checkTransferPolicy(ctx, from, from)
	spendAllowance(ctx, from, spender, amount)
	token.burn(ctx, from, amount)
}

// Permit consumes a signed off-chain authorization and sets the allowance as
// if Approve had been called by owner. The signed message binds the network
// magic, this contract's hash, owner, spender, value, the owner's current
// nonce and deadline, so a signature can be used on one network, against one
// contract, exactly once. Deadline is compared against the current block
// timestamp in milliseconds.
//
// It produces Approval notification.
func Permit(owner, spender interop.Hash160, value, deadline int, pub interop.PublicKey, sig interop.Signature) {
	ctx := storage.GetContext()
	checkAccounts(owner, spender)
	if value < 0 && value != UnlimitedAllowance {
		panic(ErrInvalidAmount)
	}
	if runtime.GetTime() > deadline {
		panic(ErrExpiredDeadline)
	}
	if !common.BytesEqual(contract.CreateStandardAccount(pub), owner) {
		panic(ErrInvalidSignature)
	}

	nonce := common.GetInt(ctx, nonceKey(owner))
	msg := permitMessage(owner, spender, value, nonce, deadline)
	if !crypto.VerifyWithECDsa(msg, pub, sig, crypto.Secp256r1) {
		panic(ErrInvalidSignature)
	}

	storage.Put(ctx, nonceKey(owner), nonce+1)
	putAllowance(ctx, owner, spender, value)
	runtime.Notify("Approval", owner, spender, value)
}

// Pause suspends every balance-changing operation. It can be invoked only by
// the contract owner.
//
// It produces Paused notification.
func Pause() {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, pausedKey, true)
	runtime.Notify("Paused")
}

// Unpause lifts the Pause suspension. It can be invoked only by the contract
// owner.
//
// It produces Unpaused notification.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused")
}

// SetBlacklist adds the account to or removes it from the blacklist. It can
// be invoked only by the contract owner; owner operations are not gated by
// the lists they manage.
//
// It produces BlacklistUpdated notification.
func SetBlacklist(account interop.Hash160, blocked bool) {
	ctx := storage.GetContext()
	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	common.CheckContractOwner(ctx)
	setListed(ctx, blacklistPrefix, account, blocked)
	runtime.Notify("BlacklistUpdated", account, blocked)
}

// SetWhitelist adds the account to or removes it from the whitelist. It can
// be invoked only by the contract owner.
//
// It produces WhitelistUpdated notification.
func SetWhitelist(account interop.Hash160, allowed bool) {
	ctx := storage.GetContext()
	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	common.CheckContractOwner(ctx)
	setListed(ctx, whitelistPrefix, account, allowed)
	runtime.Notify("WhitelistUpdated", account, allowed)
}

// SetWhitelistBatch applies SetWhitelist to every account of the list in one
// transaction. It can be invoked only by the contract owner.
//
// It produces WhitelistUpdated notification per account.
func SetWhitelistBatch(accounts []interop.Hash160, allowed bool) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	for i := 0; i < len(accounts); i++ {
		account := accounts[i]
		if len(account) != interop.Hash160Len {
			panic("incorrect length of account script hash")
		}
		setListed(ctx, whitelistPrefix, account, allowed)
		runtime.Notify("WhitelistUpdated", account, allowed)
	}
}

// SetWhitelistEnabled turns the allow-list gating of transfers on or off.
// It can be invoked only by the contract owner.
//
// It produces WhitelistEnabledSet notification.
func SetWhitelistEnabled(enabled bool) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if enabled {
		storage.Put(ctx, whitelistEnabledKey, true)
	} else {
		storage.Delete(ctx, whitelistEnabledKey)
	}
	runtime.Notify("WhitelistEnabledSet", enabled)
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

// getSupply gets the token total supply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	return common.GetInt(ctx, t.SupplyKey)
}

// balanceOf gets the token balance of a specific address.
func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	return common.GetInt(ctx, balanceKey(holder))
}

// transfer moves amount between accounts with no policy checks. A nil
// receiver debits from without crediting anyone, which is the burn path.
func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int) {
	fromBalance := t.balanceOf(ctx, from)
	if fromBalance < amount {
		panic(ErrInsufficientBalance)
	}

	if fromBalance == amount {
		storage.Delete(ctx, balanceKey(from))
	} else {
		storage.Put(ctx, balanceKey(from), fromBalance-amount)
	}

	if len(to) == interop.Hash160Len {
		storage.Put(ctx, balanceKey(to), t.balanceOf(ctx, to)+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
}

func (t Token) burn(ctx storage.Context, from interop.Hash160, amount int) {
	t.transfer(ctx, from, nil, amount)

	supply := t.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, t.SupplyKey, supply-amount)
	runtime.Notify("Burn", from, amount)
}

// checkTransferPolicy applies the transfer gating in its observable order:
// pause, then blacklist (sender before recipient), then whitelist (sender
// before recipient) when enabled.
func checkTransferPolicy(ctx storage.Context, from, to interop.Hash160) {
	if storage.Get(ctx, pausedKey) != nil {
		panic(ErrPaused)
	}
	if isListed(ctx, blacklistPrefix, from) {
		panic(ErrSenderBlacklisted)
	}
	if isListed(ctx, blacklistPrefix, to) {
		panic(ErrRecipientBlacklisted)
	}
	if storage.Get(ctx, whitelistEnabledKey) != nil {
		if !isListed(ctx, whitelistPrefix, from) {
			panic(ErrSenderNotWhitelisted)
		}
		if !isListed(ctx, whitelistPrefix, to) {
			panic(ErrRecipientNotWhitelisted)
		}
	}
}

func spendAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	remaining := common.GetInt(ctx, key)
	if remaining == UnlimitedAllowance {
		return
	}
	if remaining < amount {
		panic(ErrInsufficientAllowance)
	}
	if remaining == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, remaining-amount)
	}
}

func putAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func permitMessage(owner, spender interop.Hash160, value, nonce, deadline int) []byte {
	msg := []byte(permitMsgPrefix)
	msg = append(msg, std.Itoa(runtime.GetNetwork(), 10)...)
	msg = append(msg, runtime.GetExecutingScriptHash()...)
	msg = append(msg, owner...)
	msg = append(msg, spender...)
	msg = append(msg, '|')
	msg = append(msg, std.Itoa(value, 10)...)
	msg = append(msg, '|')
	msg = append(msg, std.Itoa(nonce, 10)...)
	msg = append(msg, '|')
	msg = append(msg, std.Itoa(deadline, 10)...)
	return msg
}

func isListed(ctx storage.Context, prefix byte, account interop.Hash160) bool {
	return storage.Get(ctx, append([]byte{prefix}, account...)) != nil
}

func setListed(ctx storage.Context, prefix byte, account interop.Hash160, present bool) {
	key := append([]byte{prefix}, account...)
	if present {
		storage.Put(ctx, key, true)
	} else {
		storage.Delete(ctx, key)
	}
}

func balanceKey(holder interop.Hash160) []byte {
	return append([]byte{balancePrefix}, holder...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}

func nonceKey(account interop.Hash160) []byte {
	return append([]byte{noncePrefix}, account...)
}

func checkAccounts(a, b interop.Hash160) {
	if len(a) != interop.Hash160Len || len(b) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
}
