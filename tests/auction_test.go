package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	auctionTokenAmount  = 100
	auctionReserve      = 50_000
	auctionMinIncrement = 1_000
)

type auctionSetup struct {
	e     *neotest.Executor
	hash  util.Uint160
	token util.Uint160
	store util.Uint160

	seller       neotest.Signer
	distribution util.Uint160
	teamWallet   util.Uint160
}

func newAuctionSetup(t *testing.T) *auctionSetup {
	e := newExecutor(t)

	store := deployStoreContract(t, e)
	distribution := e.NewAccount(t).ScriptHash()
	teamWallet := e.NewAccount(t).ScriptHash()

	hash := deployContract(t, e, auctionPath,
		[]any{e.CommitteeHash, store, distribution, teamWallet})
	registerInStore(t, e, store, hash)

	token := deployTokenContract(t, e)
	seller := e.NewAccount(t)
	mintTokens(t, e, token, seller.ScriptHash(), auctionTokenAmount)

	return &auctionSetup{
		e:            e,
		hash:         hash,
		token:        token,
		store:        store,
		seller:       seller,
		distribution: distribution,
		teamWallet:   teamWallet,
	}
}

// configure runs the one-time setup with the bidding window [start, end) and
// escrows the auctioned tokens.
func (a *auctionSetup) configure(t *testing.T, start, end uint64) {
	inv := a.e.NewInvoker(a.hash, a.seller)
	inv.Invoke(t, nil, "setup", a.seller.ScriptHash(), a.token,
		int64(auctionTokenAmount), int64(start), int64(end),
		int64(auctionReserve), int64(auctionMinIncrement))

	tokenInv := a.e.NewInvoker(a.token, a.seller)
	tokenInv.Invoke(t, true, "transfer",
		a.seller.ScriptHash(), a.hash, int64(auctionTokenAmount), nil)
}

func (a *auctionSetup) bid(t *testing.T, bidder neotest.Signer, amount int64) {
	gasInvoker(t, a.e, bidder).Invoke(t, true, "transfer",
		bidder.ScriptHash(), a.hash, amount, []any{"bid"})
}

func (a *auctionSetup) bidFail(t *testing.T, message string, bidder neotest.Signer, amount int64) {
	gasInvoker(t, a.e, bidder).InvokeFail(t, message, "transfer",
		bidder.ScriptHash(), a.hash, amount, []any{"bid"})
}

func TestAuctionSetup(t *testing.T) {
	a := newAuctionSetup(t)
	inv := a.e.NewInvoker(a.hash, a.seller)
	now := blockTime(t, a.e)

	sellerHash := a.seller.ScriptHash()
	inv.InvokeFail(t, "setup: start time is in the past", "setup",
		sellerHash, a.token, int64(auctionTokenAmount),
		int64(now), int64(now+100), int64(auctionReserve), int64(auctionMinIncrement))
	inv.InvokeFail(t, "setup: start time after end time", "setup",
		sellerHash, a.token, int64(auctionTokenAmount),
		int64(now+100), int64(now+100), int64(auctionReserve), int64(auctionMinIncrement))
	inv.InvokeFail(t, "setup: reserve price does not cover the fee unit", "setup",
		sellerHash, a.token, int64(auctionTokenAmount),
		int64(now+100), int64(now+200), int64(1000), int64(auctionMinIncrement))
	inv.InvokeFail(t, "setup: non positive bid increment", "setup",
		sellerHash, a.token, int64(auctionTokenAmount),
		int64(now+100), int64(now+200), int64(auctionReserve), int64(0))

	a.configure(t, now+100, now+1_000_000)

	inv.Invoke(t, int64(auctionReserve), "reserveAmount")
	inv.Invoke(t, int64(auctionMinIncrement), "minBidIncrement")
	inv.Invoke(t, int64(auctionTokenAmount), "tokenAmount")
	requireBytesResult(t, inv, sellerHash.BytesBE(), "seller")
	requireBytesResult(t, inv, a.token.BytesBE(), "token")
	inv.Invoke(t, int64(0), "numBids")

	inv.InvokeFail(t, "setup: auction already configured", "setup",
		sellerHash, a.token, int64(auctionTokenAmount),
		int64(now+10_000), int64(now+20_000), int64(auctionReserve), int64(auctionMinIncrement))
}

func TestAuctionBid(t *testing.T) {
	a := newAuctionSetup(t)
	bidder1 := a.e.NewAccount(t)
	bidder2 := a.e.NewAccount(t)

	a.bidFail(t, "bid: auction is not configured", bidder1, auctionReserve)

	now := blockTime(t, a.e)
	start, end := now+50, now+1_000_000
	a.configure(t, start, end)

	a.bidFail(t, "bid: auction has not started", bidder1, auctionReserve)
	jumpToTime(t, a.e, start)

	a.bidFail(t, "bid: amount is below the reserve price", bidder1, auctionReserve-1)
	a.bid(t, bidder1, auctionReserve)

	inv := a.e.CommitteeInvoker(a.hash)
	inv.Invoke(t, int64(auctionReserve), "leadBidAmount")
	inv.Invoke(t, int64(1), "numBids")

	a.bidFail(t, "bid: amount does not clear the minimum increment",
		bidder2, auctionReserve+auctionMinIncrement-1)

	// the displaced lead bid goes back minus one fee unit
	balanceBefore := gasBalance(t, a.e, bidder1.ScriptHash())
	a.bid(t, bidder2, auctionReserve+auctionMinIncrement)
	require.Equal(t, balanceBefore+auctionReserve-1000,
		gasBalance(t, a.e, bidder1.ScriptHash()))

	inv.Invoke(t, int64(auctionReserve+auctionMinIncrement), "leadBidAmount")
	inv.Invoke(t, int64(2), "numBids")

	jumpToTime(t, a.e, end)
	a.bidFail(t, "bid: auction already ended", bidder1,
		auctionReserve+2*auctionMinIncrement)
}

func TestAuctionCloseSettled(t *testing.T) {
	a := newAuctionSetup(t)
	bidder1 := a.e.NewAccount(t)
	bidder2 := a.e.NewAccount(t)

	now := blockTime(t, a.e)
	start, end := now+50, now+10_000
	a.configure(t, start, end)
	jumpToTime(t, a.e, start)

	a.bid(t, bidder1, auctionReserve)
	a.bid(t, bidder2, auctionReserve+auctionMinIncrement)

	inv := a.e.CommitteeInvoker(a.hash)
	inv.InvokeFail(t, "close: auction is in progress", "close")

	jumpToTime(t, a.e, end)

	// refund of bidder1 already went out, the contract holds both the fee
	// unit of the displaced bid and the lead bid itself
	contractBalance := gasBalance(t, a.e, a.hash)
	require.Equal(t, int64(auctionReserve+auctionMinIncrement+1000), contractBalance)

	sellerBefore := gasBalance(t, a.e, a.seller.ScriptHash())
	teamBefore := gasBalance(t, a.e, a.teamWallet)
	distributionBefore := gasBalance(t, a.e, a.distribution)

	inv.Invoke(t, nil, "close")

	winner := bidder2.ScriptHash()
	require.Equal(t, int64(auctionTokenAmount), tokenBalance(t, a.e, a.token, winner))
	require.Equal(t, sellerBefore+contractBalance*97/100,
		gasBalance(t, a.e, a.seller.ScriptHash()))
	require.Equal(t, teamBefore+contractBalance*3/200, gasBalance(t, a.e, a.teamWallet))
	require.Equal(t, distributionBefore+contractBalance*3/200,
		gasBalance(t, a.e, a.distribution))

	lead := int64(auctionReserve + auctionMinIncrement)
	storeInv := a.e.CommitteeInvoker(a.store)
	storeInv.Invoke(t, lead, "soldAmount", a.seller.ScriptHash())
	storeInv.Invoke(t, lead, "boughtAmount", winner)
	storeInv.Invoke(t, lead, "totalSoldAmount")
	storeInv.Invoke(t, lead, "totalBoughtAmount")

	inv.InvokeFail(t, "close: auction already closed", "close")
	a.bidFail(t, "bid: auction already closed", bidder1, 2*auctionReserve)
}

func TestAuctionCloseReentrancy(t *testing.T) {
	a := newAuctionSetup(t)

	now := blockTime(t, a.e)
	start, end := now+50, now+10_000
	a.configure(t, start, end)
	jumpToTime(t, a.e, start)

	client := deployMarketClient(t, a.e)
	gasInvoker(t, a.e, a.e.Validator).Invoke(t, true, "transfer",
		a.e.Validator.ScriptHash(), client, int64(auctionReserve), nil)

	clientInv := a.e.CommitteeInvoker(client)
	clientInv.Invoke(t, nil, "bid", a.hash, int64(auctionReserve))
	clientInv.Invoke(t, nil, "arm", a.hash, "close", []byte{}, int64(0))

	jumpToTime(t, a.e, end)

	// settling the auction pays the asset out to the winning client, its
	// receive callback calls close again and the repeated call must abort
	// the whole settlement
	a.e.CommitteeInvoker(a.hash).InvokeFail(t, "close: auction already closed", "close")

	require.Equal(t, int64(auctionReserve), gasBalance(t, a.e, a.hash))
	a.e.CommitteeInvoker(a.hash).Invoke(t, int64(auctionReserve), "leadBidAmount")
}

func TestAuctionCloseReserveNotMet(t *testing.T) {
	a := newAuctionSetup(t)

	now := blockTime(t, a.e)
	start, end := now+50, now+10_000
	a.configure(t, start, end)
	jumpToTime(t, a.e, end)

	a.e.CommitteeInvoker(a.hash).Invoke(t, nil, "close")

	// no bids: the asset goes back to the seller
	require.Equal(t, int64(auctionTokenAmount),
		tokenBalance(t, a.e, a.token, a.seller.ScriptHash()))
	require.Equal(t, int64(0), tokenBalance(t, a.e, a.token, a.hash))
}

func TestAuctionCancelBeforeStart(t *testing.T) {
	a := newAuctionSetup(t)

	now := blockTime(t, a.e)
	a.configure(t, now+1_000_000, now+2_000_000)

	stranger := a.e.NewAccount(t)
	a.e.NewInvoker(a.hash, stranger).InvokeFail(t,
		"close: cancellation is allowed to the seller or the owner only", "close")

	a.e.NewInvoker(a.hash, a.seller).Invoke(t, nil, "close")
	require.Equal(t, int64(auctionTokenAmount),
		tokenBalance(t, a.e, a.token, a.seller.ScriptHash()))
}
