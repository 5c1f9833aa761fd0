/*
Subscription contract sells STET for stablecoin payment.

The contract is a pure relay between two balances it does not own: a
pre-funded token treasury that approved STET to it, and the buyer's
stablecoin balance approved to it the same way. A purchase forwards the
stablecoin to the payment treasury and moves ten STET per normalized payment
unit to the buyer at a fixed rate. Two payment currencies are configured at
deploy time (USDT and USDC contracts); both must report exactly 18 decimal
places, the contract refuses any other precision instead of rescaling.

Cumulative accepted payment is tracked against a lifetime cap denominated in
18-decimal units. The cap is initially unset and may be changed by the owner
at any time, including below the amount already raised, which blocks all
further purchases without any retroactive effect.

# Contract notifications

SubscriptionCreated notification.

	SubscriptionCreated:
	  - name: buyer
	    type: Hash160
	  - name: currency
	    type: Hash160
	  - name: payAmount
	    type: Integer
	  - name: stetAmount
	    type: Integer

CapUpdated notification.

	CapUpdated:
	  - name: newCap
	    type: Integer

OwnershipTransferred notification.

	OwnershipTransferred:
	  - name: previousOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160
*/
package subscription
