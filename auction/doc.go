/*
Package auction contains implementation of the English auction contract of
the marketplace suite. One deployed instance sells one asset lot.

The auction moves through a fixed lifecycle. Deployment binds the instance
to the store ledger, the distribution contract and the team wallet. Setup
configures the lot (seller, token, amount, bidding window, reserve price and
minimum increment) and can happen only once. The seller funds the auction
with a plain NEP-17 transfer of the auctioned token. Bids are GAS transfers
carrying ["bid"] as attached data: the transferred amount is the bid, and a
bid is accepted only when the auction is funded, the window is open and the
amount clears both the reserve and the current lead bid plus the minimum
increment. An accepted bid refunds the displaced lead bidder their exact bid
minus one fee unit. Close settles the lot: the asset goes to the winner, the
collected GAS is split 97/1.5/1.5 between seller, team wallet and
distribution contract, and the settled volume is reported to the store
ledger. If the reserve was not met, asset and bid go back to their owners.

# Contract notifications

Bid notification. Emitted on every accepted bid:

	Bid
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer

AuctionSettled notification. Emitted when Close transfers the asset to the
lead bidder:

	AuctionSettled
	  - name: winner
	    type: Hash160
	  - name: amount
	    type: Integer

AuctionReturned notification. Emitted when Close returns the asset to the
seller because the reserve was not met or there were no bids:

	AuctionReturned
	  - name: seller
	    type: Hash160

AuctionCancelled notification. Emitted when the listing is cancelled before
the bidding window opens:

	AuctionCancelled
	  - name: seller
	    type: Hash160
*/
package auction
