/*
Converter contract is the one-way exit from the STET ledger.

A holder converts equity token into off-chain rights by destroying it
against the fingerprint of a conversion document (a 32-byte hash of, for
example, an IPFS-pinned agreement). The converter owns no token at any point:
it burns straight from the holder's balance through the allowance granted to
it, either with a prior approve or with a permit signature consumed in the
same transaction. Every conversion is appended to an on-chain record log and
announced with a notification carrying the fingerprint unchanged, which is
the durable audit trail auditors reconcile against the document archive.

# Contract notifications

Converted notification.

	Converted:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: document
	    type: Hash256

OwnershipTransferred notification.

	OwnershipTransferred:
	  - name: previousOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160
*/
package converter
