package common

// Settlement fee schedule shared by the auction, bidding and trading
// contracts: 97% of the settled amount goes to the primary recipient, 1.5%
// to the team wallet and 1.5% to the distribution contract. All shares use
// truncating integer division, the round-off remainder stays on the
// contract balance and is never redistributed.
const (
	// FeeUnit is subtracted from displaced-bid refunds so that the refund
	// transfer never drains the fee reserve of the contract.
	FeeUnit = 1000
)

// PrimaryShare returns the 97% cut of a settled amount.
func PrimaryShare(amount int) int {
	return amount * 97 / 100
}

// ServiceShare returns the 1.5% cut of a settled amount. It is paid twice
// per settlement: once to the team wallet and once to the distribution
// contract.
func ServiceShare(amount int) int {
	return amount * 3 / 200
}
