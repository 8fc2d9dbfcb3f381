package auction

import (
	"github.com/algoverse-exchange/marketplace-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	ownerKey         = "contractOwner"
	storeContractKey = "storeScriptHash"
	distributionKey  = "distributionAddress"
	teamWalletKey    = "teamWallet"

	sellerKey       = "seller"
	tokenKey        = "tokenScriptHash"
	tokenAmountKey  = "tokenAmount"
	startTimeKey    = "startTime"
	endTimeKey      = "endTime"
	reserveKey      = "reserveAmount"
	minIncrementKey = "minBidIncrement"

	leadBidderKey = "leadBidder"
	leadAmountKey = "leadBidAmount"
	numBidsKey    = "numBids"
	closedKey     = "closed"

	bidMethod = "bid"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner        interop.Hash160
		store        interop.Hash160
		distribution interop.Hash160
		teamWallet   interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len ||
		len(args.store) != interop.Hash160Len ||
		len(args.distribution) != interop.Hash160Len ||
		len(args.teamWallet) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, storeContractKey, args.store)
	storage.Put(ctx, distributionKey, args.distribution)
	storage.Put(ctx, teamWalletKey, args.teamWallet)

	runtime.Log("auction contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("auction contract updated")
}

// Setup configures the auction listing: the seller, the auctioned NEP-17
// token, the amount on sale, the bidding window and the price constraints.
// It can be called exactly once, before startTime. The asset itself arrives
// with a separate token transfer from the seller, the auction counts as
// funded as soon as the contract token balance covers tokenAmount.
func Setup(seller, token interop.Hash160, tokenAmount, startTime, endTime, reserveAmount, minBidIncrement int) {
	ctx := storage.GetContext()
	if storage.Get(ctx, tokenKey) != nil {
		panic("setup: auction already configured")
	}

	if len(seller) != interop.Hash160Len || len(token) != interop.Hash160Len {
		panic("setup: incorrect length of account script hash")
	}
	if tokenAmount <= 0 {
		panic("setup: non positive token amount")
	}

	now := runtime.GetTime()
	if now >= startTime {
		panic("setup: start time is in the past")
	}
	if startTime >= endTime {
		panic("setup: start time after end time")
	}
	if reserveAmount <= common.FeeUnit {
		panic("setup: reserve price does not cover the fee unit")
	}
	if minBidIncrement <= 0 {
		panic("setup: non positive bid increment")
	}

	storage.Put(ctx, sellerKey, seller)
	storage.Put(ctx, tokenKey, token)
	storage.Put(ctx, tokenAmountKey, tokenAmount)
	storage.Put(ctx, startTimeKey, startTime)
	storage.Put(ctx, endTimeKey, endTime)
	storage.Put(ctx, reserveKey, reserveAmount)
	storage.Put(ctx, minIncrementKey, minBidIncrement)
	storage.Put(ctx, numBidsKey, 0)
	storage.Put(ctx, leadAmountKey, 0)

	runtime.Log("auction contract configured")
}

// OnNEP17Payment is a callback for NEP-17 transfers to the auction account.
// A transfer of the auctioned token funds the auction. A GAS transfer with
// ["bid"] attached places a bid of the transferred amount; a transfer that
// fails bid validation faults and is fully rolled back together with the
// payment itself.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	caller := runtime.GetCallingScriptHash()

	token := storage.Get(ctx, tokenKey)
	if token != nil && common.BytesEqual(caller, token.(interop.Hash160)) {
		if common.GetInt(ctx, closedKey) != 0 {
			panic("onNEP17Payment: auction already closed")
		}
		runtime.Log("auction asset deposit received")
		return
	}

	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: unexpected asset")
	}

	args := data.([]interface{})
	if args[0].(string) != bidMethod {
		panic("onNEP17Payment: unknown method")
	}

	bid(ctx, from, amount)
}

func bid(ctx storage.Context, bidder interop.Hash160, amount int) {
	token := storage.Get(ctx, tokenKey)
	if token == nil {
		panic("bid: auction is not configured")
	}
	if common.GetInt(ctx, closedKey) != 0 {
		panic("bid: auction already closed")
	}
	if common.TokenBalance(token.(interop.Hash160)) < common.GetInt(ctx, tokenAmountKey) {
		panic("bid: auction is not funded")
	}

	now := runtime.GetTime()
	if now < common.GetInt(ctx, startTimeKey) {
		panic("bid: auction has not started")
	}
	if now >= common.GetInt(ctx, endTimeKey) {
		panic("bid: auction already ended")
	}

	if amount < common.GetInt(ctx, reserveKey) {
		panic("bid: amount is below the reserve price")
	}

	leadAmount := common.GetInt(ctx, leadAmountKey)
	if amount < leadAmount+common.GetInt(ctx, minIncrementKey) {
		panic("bid: amount does not clear the minimum increment")
	}

	prev := storage.Get(ctx, leadBidderKey)

	// the lead slot is settled before the displaced bid goes back (minus
	// one fee unit), the refund payment callback observes the new lead
	storage.Put(ctx, leadBidderKey, bidder)
	storage.Put(ctx, leadAmountKey, amount)
	storage.Put(ctx, numBidsKey, common.GetInt(ctx, numBidsKey)+1)

	if prev != nil {
		common.SendGas(prev.(interop.Hash160), leadAmount-common.FeeUnit)
	}

	runtime.Notify("Bid", bidder, amount)
}

// Close finishes the auction. Before startTime it cancels the listing and is
// allowed to the seller or the contract owner only: the asset and any
// collected GAS go back to the seller. After endTime anyone can settle: if
// the lead bid cleared the reserve, the asset goes to the lead bidder and
// the contract GAS balance is split 97/1.5/1.5 between the seller, the team
// wallet and the distribution contract, and the trade volume is recorded in
// the store ledger; otherwise the asset returns to the seller and the lead
// bidder is refunded minus one fee unit. While the auction is in progress,
// Close is rejected. A second Close is rejected.
func Close() {
	ctx := storage.GetContext()

	token := storage.Get(ctx, tokenKey)
	if token == nil {
		panic("close: auction is not configured")
	}
	if common.GetInt(ctx, closedKey) != 0 {
		panic("close: auction already closed")
	}

	// the closed flag is set before any transfer goes out; a panic on the
	// remaining checks rolls the write back with the whole transaction
	storage.Put(ctx, closedKey, 1)

	tokenHash := token.(interop.Hash160)
	seller := storage.Get(ctx, sellerKey).(interop.Hash160)
	contractHash := runtime.GetExecutingScriptHash()

	now := runtime.GetTime()
	switch {
	case now < common.GetInt(ctx, startTimeKey):
		owner := storage.Get(ctx, ownerKey).(interop.Hash160)
		if !runtime.CheckWitness(seller) && !runtime.CheckWitness(owner) {
			panic("close: cancellation is allowed to the seller or the owner only")
		}

		common.SendTokens(tokenHash, seller, common.TokenBalance(tokenHash))
		common.SendGas(seller, gas.BalanceOf(contractHash))
		runtime.Notify("AuctionCancelled", seller)
	case now >= common.GetInt(ctx, endTimeKey):
		lead := storage.Get(ctx, leadBidderKey)
		leadAmount := common.GetInt(ctx, leadAmountKey)

		if lead != nil && leadAmount >= common.GetInt(ctx, reserveKey) {
			winner := lead.(interop.Hash160)
			common.SendTokens(tokenHash, winner, common.TokenBalance(tokenHash))

			balance := gas.BalanceOf(contractHash)
			if balance < leadAmount {
				panic("close: insufficient balance for settlement")
			}

			teamWallet := storage.Get(ctx, teamWalletKey).(interop.Hash160)
			distribution := storage.Get(ctx, distributionKey).(interop.Hash160)
			common.SettleGas(seller, teamWallet, distribution, balance)

			store := storage.Get(ctx, storeContractKey).(interop.Hash160)
			contract.Call(store, "auction", contract.All, seller, winner, leadAmount)

			runtime.Notify("AuctionSettled", winner, leadAmount)
		} else {
			common.SendTokens(tokenHash, seller, common.TokenBalance(tokenHash))
			if lead != nil {
				common.SendGas(lead.(interop.Hash160), leadAmount-common.FeeUnit)
			}
			common.SendGas(seller, gas.BalanceOf(contractHash))
			runtime.Notify("AuctionReturned", seller)
		}
	default:
		panic("close: auction is in progress")
	}
}

// Seller returns the account selling the auctioned asset.
func Seller() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, sellerKey).(interop.Hash160)
}

// Token returns the script hash of the auctioned NEP-17 token.
func Token() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenKey).(interop.Hash160)
}

// TokenAmount returns the amount of the asset on sale.
func TokenAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, tokenAmountKey)
}

// StartTime returns the opening of the bidding window in milliseconds.
func StartTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, startTimeKey)
}

// EndTime returns the closing of the bidding window in milliseconds.
func EndTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, endTimeKey)
}

// ReserveAmount returns the minimum lead bid required for a settlement in
// favor of the lead bidder.
func ReserveAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, reserveKey)
}

// MinBidIncrement returns the amount every new bid must add on top of the
// current lead bid.
func MinBidIncrement() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, minIncrementKey)
}

// LeadBidAmount returns the current lead bid. It never decreases while the
// auction is open.
func LeadBidAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, leadAmountKey)
}

// NumBids returns the number of accepted bids.
func NumBids() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, numBidsKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}
