package store

// A set of standard contract names of the marketplace suite.
const (
	NameAuction = "auction"
	NameBidding = "bidding"
	NameTrading = "trading"
	NameStaking = "staking"
	NameStore   = "store"
	NameSwap    = "swap"
)
