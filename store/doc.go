/*
Package store implements the volume ledger of the marketplace suite. It
accumulates per-account sold and bought volumes together with running
suite-wide totals. Volume records are pushed by the auction, bidding and
trading contracts when a sale settles; only contracts registered via Setup
(or the owner directly) may push them.

Totals are maintained incrementally: every record adds the settled amount
to the seller's sold volume, the buyer's bought volume and both totals, so
the invariant total == sum of per-account volumes holds at all times,
including across the administrative SetSold, SetBought and Reset methods.

# Contract notifications

Buy notification. It's emitted when the bidding contract reports a settled
purchase.

	Buy
	  - name: seller
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: amount
	    type: Integer

Sell notification. It's emitted when the trading contract reports a settled
sale.

	Sell
	  - name: seller
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: amount
	    type: Integer

Auction notification. It's emitted when the auction contract reports a
settled auction.

	Auction
	  - name: seller
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package store
