/*
USD mock contract is a plain fungible token used by the test suite.

It stands in for the USDT/USDC payment currencies of the subscription
contract: symbol, decimals and fixed supply are chosen at deploy time, so
the suite can exercise both the 18-decimals happy path and the rejection of
any other precision. It carries the same approve/transferFrom surface as the
equity token, with no compliance policy of any kind.

# Contract notifications

Transfer notification. This is NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package usdmock
