package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type tradingSetup struct {
	e     *neotest.Executor
	hash  util.Uint160
	token util.Uint160
	store util.Uint160

	distribution util.Uint160
	teamWallet   util.Uint160
}

func newTradingSetup(t *testing.T) *tradingSetup {
	e := newExecutor(t)

	store := deployStoreContract(t, e)
	distribution := e.NewAccount(t).ScriptHash()
	teamWallet := e.NewAccount(t).ScriptHash()

	hash := deployContract(t, e, tradingPath,
		[]any{e.CommitteeHash, store, distribution, teamWallet})
	registerInStore(t, e, store, hash)

	return &tradingSetup{
		e:            e,
		hash:         hash,
		token:        deployTokenContract(t, e),
		store:        store,
		distribution: distribution,
		teamWallet:   teamWallet,
	}
}

func (tr *tradingSetup) list(t *testing.T, seller neotest.Signer, slotID []byte, amount, price int64) {
	tr.e.NewInvoker(tr.token, seller).Invoke(t, true, "transfer",
		seller.ScriptHash(), tr.hash, amount, []any{"trade", slotID, price})
}

func (tr *tradingSetup) requireListing(t *testing.T, seller util.Uint160, slotID []byte, token util.Uint160, amount, price int64) {
	listing := tr.getListing(t, seller, slotID)

	tokenBytes, err := listing[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, token.BytesBE(), tokenBytes)
	requireIntItem(t, amount, listing[1])
	requireIntItem(t, price, listing[2])
}

func (tr *tradingSetup) requireFreeSlot(t *testing.T, seller util.Uint160, slotID []byte) {
	listing := tr.getListing(t, seller, slotID)
	requireIntItem(t, 0, listing[1])
	requireIntItem(t, 0, listing[2])
}

func (tr *tradingSetup) getListing(t *testing.T, seller util.Uint160, slotID []byte) []stackitem.Item {
	s, err := tr.e.CommitteeInvoker(tr.hash).TestInvoke(t, "getListing", seller, slotID)
	require.NoError(t, err)
	return s.Pop().Array()
}

func TestTradingList(t *testing.T) {
	tr := newTradingSetup(t)
	seller := tr.e.NewAccount(t)
	slotID := newSlotID()

	mintTokens(t, tr.e, tr.token, seller.ScriptHash(), 100)

	tr.e.NewInvoker(tr.token, seller).InvokeFail(t, "trade: non positive price",
		"transfer", seller.ScriptHash(), tr.hash, int64(10),
		[]any{"trade", slotID, int64(0)})

	tr.list(t, seller, slotID, 10, 200)
	tr.requireListing(t, seller.ScriptHash(), slotID, tr.token, 10, 200)
	require.Equal(t, int64(10), tokenBalance(t, tr.e, tr.token, tr.hash))

	// replacing the open slot returns the old escrow before the overwrite
	tr.list(t, seller, slotID, 20, 300)
	tr.requireListing(t, seller.ScriptHash(), slotID, tr.token, 20, 300)
	require.Equal(t, int64(20), tokenBalance(t, tr.e, tr.token, tr.hash))
	require.Equal(t, int64(80), tokenBalance(t, tr.e, tr.token, seller.ScriptHash()))
}

func TestTradingCancel(t *testing.T) {
	tr := newTradingSetup(t)
	seller := tr.e.NewAccount(t)
	slotID := newSlotID()

	mintTokens(t, tr.e, tr.token, seller.ScriptHash(), 100)
	tr.list(t, seller, slotID, 10, 200)

	stranger := tr.e.NewAccount(t)
	tr.e.NewInvoker(tr.hash, stranger).InvokeFail(t, "seller witness check failed",
		"cancel", seller.ScriptHash(), slotID)

	inv := tr.e.NewInvoker(tr.hash, seller)
	inv.Invoke(t, nil, "cancel", seller.ScriptHash(), slotID)
	require.Equal(t, int64(100), tokenBalance(t, tr.e, tr.token, seller.ScriptHash()))
	tr.requireFreeSlot(t, seller.ScriptHash(), slotID)

	inv.InvokeFail(t, "cancel: slot is not open", "cancel", seller.ScriptHash(), slotID)
}

func TestTradingAccept(t *testing.T) {
	tr := newTradingSetup(t)
	seller := tr.e.NewAccount(t)
	buyer := tr.e.NewAccount(t)
	slotID := newSlotID()

	const (
		amount = int64(10)
		price  = int64(200_000)
	)

	mintTokens(t, tr.e, tr.token, seller.ScriptHash(), amount)
	tr.list(t, seller, slotID, amount, price)

	buyerGas := gasInvoker(t, tr.e, buyer)
	buyerGas.InvokeFail(t, "accept: payment does not match the listed price",
		"transfer", buyer.ScriptHash(), tr.hash, price-1,
		[]any{"accept", seller.ScriptHash(), slotID, amount})
	buyerGas.InvokeFail(t, "accept: amount does not match the listing",
		"transfer", buyer.ScriptHash(), tr.hash, price,
		[]any{"accept", seller.ScriptHash(), slotID, amount - 1})

	sellerBefore := gasBalance(t, tr.e, seller.ScriptHash())
	teamBefore := gasBalance(t, tr.e, tr.teamWallet)
	distributionBefore := gasBalance(t, tr.e, tr.distribution)

	buyerGas.Invoke(t, true, "transfer", buyer.ScriptHash(), tr.hash, price,
		[]any{"accept", seller.ScriptHash(), slotID, amount})

	require.Equal(t, amount, tokenBalance(t, tr.e, tr.token, buyer.ScriptHash()))
	require.Equal(t, sellerBefore+price*97/100, gasBalance(t, tr.e, seller.ScriptHash()))
	require.Equal(t, teamBefore+price*3/200, gasBalance(t, tr.e, tr.teamWallet))
	require.Equal(t, distributionBefore+price*3/200, gasBalance(t, tr.e, tr.distribution))
	tr.requireFreeSlot(t, seller.ScriptHash(), slotID)

	storeInv := tr.e.CommitteeInvoker(tr.store)
	storeInv.Invoke(t, price, "soldAmount", seller.ScriptHash())
	storeInv.Invoke(t, price, "boughtAmount", buyer.ScriptHash())

	buyerGas.InvokeFail(t, "accept: slot is not open",
		"transfer", buyer.ScriptHash(), tr.hash, price,
		[]any{"accept", seller.ScriptHash(), slotID, amount})
}
