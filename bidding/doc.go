/*
Package bidding contains implementation of the offer-book contract of the
marketplace suite. Bidders escrow GAS against an asset they want, sellers
accept an offer by shipping the asset.

Every offer lives in a slot keyed by the bidder's account and a client
chosen slot id, so one account can keep any number of parallel offers while
a slot itself holds at most one open offer at a time. Placing an offer into
a busy slot refunds the previously escrowed price in full. Cancelling refunds
and frees the slot. Accepting is a plain
NEP-17 transfer of the wanted token from the seller with the bidder's slot
attached: the contract verifies token and amount against the slot record,
splits the escrowed price 97/1.5/1.5 between seller, team wallet and
distribution contract, forwards the asset to the bidder and reports the
settled volume to the store ledger.

# Contract notifications

BidPlaced notification. Emitted when an offer is opened or replaced:

	BidPlaced
	  - name: bidder
	    type: Hash160
	  - name: token
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: price
	    type: Integer

BidCancelled notification. Emitted when an offer is withdrawn:

	BidCancelled
	  - name: bidder
	    type: Hash160

BidAccepted notification. Emitted when a seller accepts an offer:

	BidAccepted
	  - name: seller
	    type: Hash160
	  - name: bidder
	    type: Hash160
	  - name: price
	    type: Integer
*/
package bidding
