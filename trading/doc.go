/*
Package trading contains implementation of the exchange contract of the
marketplace suite, the structural mirror of the bidding contract: sellers
escrow an asset against the price they want, buyers accept a listing by
paying it.

Every listing lives in a slot keyed by the seller's account and a client
chosen slot id. Opening a listing is a plain NEP-17 transfer of the asset
with the slot and the asked price attached; re-listing into a busy slot
returns the previously escrowed asset. Cancelling returns the asset
and frees the slot. Accepting is a GAS transfer of exactly the listed price:
the contract splits it 97/1.5/1.5 between seller, team wallet and
distribution contract, delivers the asset to the buyer and reports the
settled volume to the store ledger.

# Contract notifications

ListingPlaced notification. Emitted when a listing is opened or replaced:

	ListingPlaced
	  - name: seller
	    type: Hash160
	  - name: token
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: price
	    type: Integer

ListingCancelled notification. Emitted when a listing is withdrawn:

	ListingCancelled
	  - name: seller
	    type: Hash160

ListingAccepted notification. Emitted when a buyer accepts a listing:

	ListingAccepted
	  - name: seller
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: price
	    type: Integer
*/
package trading
