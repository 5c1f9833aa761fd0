/*
STET contract is the ShengTuo equity token ledger.

STET is a fixed-supply fungible token with 18 decimals. The entire supply of
50 million STET is credited to a designated recipient at deploy time and can
only decrease afterwards through burning; there is no mint path. On top of
the NEP-17 surface the contract carries an allowance scheme (approve /
transferFrom / burnFrom), a signed off-chain authorization (permit) and the
compliance policy of a regulated instrument: a global pause switch, a hard
blacklist and an optional whitelist. Policy gates every balance movement but
never the granting of allowances, funding logic is checked at movement time.

Permit consumes a message signed off-chain with the holder's key. The message
binds the network magic, the token contract hash, the owner, the spender, the
value, the owner's nonce and an expiry deadline, so one signature works on
one network, against one contract, exactly once.

# Contract notifications

Transfer notification. This is NEP-17 standard notification. from is null
when supply is minted on deploy, to is null when token is burned.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced when an allowance is set with approve or
permit. An amount of -1 means the allowance is unlimited.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Burn notification. Produced after token is destroyed, alongside a Transfer
notification with a null receiver.

	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Paused and Unpaused notifications. Produced when the owner toggles the
global circuit breaker. They carry no arguments.

BlacklistUpdated notification.

	BlacklistUpdated:
	  - name: account
	    type: Hash160
	  - name: blocked
	    type: Boolean

WhitelistUpdated notification. Also produced per account by the batched
setWhitelistBatch method.

	WhitelistUpdated:
	  - name: account
	    type: Hash160
	  - name: allowed
	    type: Boolean

WhitelistEnabledSet notification.

	WhitelistEnabledSet:
	  - name: enabled
	    type: Boolean

OwnershipTransferred notification.

	OwnershipTransferred:
	  - name: previousOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160
*/
package stet
