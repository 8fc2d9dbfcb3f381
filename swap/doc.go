/*
Package swap implements the liquidity pool placeholder of the marketplace
suite. The pool binds to a canonical asset pair via Bootstrap after an
upfront GAS fee deposit and exposes the NEP-17 read surface of its future
liquidity token (symbol ALVPOOL). The exchange methods Swap, Mint and Burn
are reserved and reject every call until the pool math lands.

# Contract notifications

Bootstrap notification. It's emitted when the pool is bound to an asset
pair.

	Bootstrap
	  - name: assetA
	    type: Hash160
	  - name: assetB
	    type: Hash160
	  - name: fee
	    type: Integer
*/
package swap
