package bidding

import (
	"github.com/algoverse-exchange/marketplace-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Offer is an open bid stored in a slot. A slot holds at most one open
// offer: Token, Amount and Price are all non-zero for an open slot, a
// missing record means the slot is free.
type Offer struct {
	// Token is the script hash of the NEP-17 token the bidder wants.
	Token interop.Hash160
	// Amount of the token the bidder wants.
	Amount int
	// Price in GAS escrowed on the contract.
	Price int
}

const (
	ownerKey         = "contractOwner"
	storeContractKey = "storeScriptHash"
	distributionKey  = "distributionAddress"
	teamWalletKey    = "teamWallet"

	offerPrefix = 'o'

	bidMethod    = "bid"
	acceptMethod = "accept"
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

	runtime.Log("bidding contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("bidding contract updated")
}

// OnNEP17Payment is a callback for NEP-17 transfers to the bidding account.
//
// A GAS transfer with ["bid", slotID, token, amount] attached places an
// offer: the transferred GAS is the escrowed price, slotID names the
// bidder's slot, token and amount describe the wanted asset. Replacing an
// open slot refunds the previously escrowed price in full.
//
// A token transfer with ["accept", bidder, slotID] attached accepts the
// offer in the bidder's slot: the transfer must come from the selling side
// in the exact token and amount recorded in the slot. The escrowed price is
// split 97/1.5/1.5 between the seller, the team wallet and the distribution
// contract, the asset is forwarded to the bidder and the settled volume is
// recorded in the store ledger.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	caller := runtime.GetCallingScriptHash()
	args := data.([]interface{})

	if common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		if args[0].(string) != bidMethod {
			panic("onNEP17Payment: unknown method")
		}
		placeBid(ctx, from, amount, args[1].([]byte), args[2].(interop.Hash160), args[3].(int))
		return
	}

	if args[0].(string) != acceptMethod {
		panic("onNEP17Payment: unknown method")
	}
	accept(ctx, caller, from, amount, args[1].(interop.Hash160), args[2].([]byte))
}

func placeBid(ctx storage.Context, bidder interop.Hash160, price int, slotID []byte, token interop.Hash160, amount int) {
	if len(token) != interop.Hash160Len {
		panic("bid: incorrect length of token script hash")
	}
	if common.BytesEqual(token, interop.Hash160(gas.Hash)) {
		panic("bid: GAS cannot be the wanted token")
	}
	if amount <= 0 {
		panic("bid: non positive token amount")
	}
	if price <= 0 {
		panic("bid: non positive price")
	}

	key := common.SlotKey(offerPrefix, bidder, slotID)
	prev := getOffer(ctx, key)

	// the slot is overwritten before the old escrow goes back, the refund
	// payment callback observes the new offer
	common.SetSerialized(ctx, key, Offer{
		Token:  token,
		Amount: amount,
		Price:  price,
	})
	if isOpen(prev) {
		common.SendGas(bidder, prev.Price)
	}

	runtime.Notify("BidPlaced", bidder, token, amount, price)
}

// Cancel withdraws the open offer in the caller's slot: the escrowed price
// is refunded in full and the slot is zeroed. Can be invoked only by the
// slot owner.
func Cancel(bidder interop.Hash160, slotID []byte) {
	common.CheckWitness(bidder)

	ctx := storage.GetContext()
	key := common.SlotKey(offerPrefix, bidder, slotID)
	offer := getOffer(ctx, key)
	if !isOpen(offer) {
		panic("cancel: slot is not open")
	}

	// the slot is freed before the refund goes out
	storage.Delete(ctx, key)
	common.SendGas(bidder, offer.Price)

	runtime.Notify("BidCancelled", bidder)
}

func accept(ctx storage.Context, token, seller interop.Hash160, amount int, bidder interop.Hash160, slotID []byte) {
	key := common.SlotKey(offerPrefix, bidder, slotID)
	offer := getOffer(ctx, key)
	if !isOpen(offer) {
		panic("accept: slot is not open")
	}
	if !common.BytesEqual(token, offer.Token) {
		panic("accept: unexpected token")
	}
	if amount != offer.Amount {
		panic("accept: amount does not match the offer")
	}

	// the slot is freed before any payout goes out
	storage.Delete(ctx, key)

	teamWallet := storage.Get(ctx, teamWalletKey).(interop.Hash160)
	distribution := storage.Get(ctx, distributionKey).(interop.Hash160)
	common.SettleGas(seller, teamWallet, distribution, offer.Price)

	common.SendTokens(offer.Token, bidder, offer.Amount)

	store := storage.Get(ctx, storeContractKey).(interop.Hash160)
	contract.Call(store, "buy", contract.All, seller, bidder, offer.Price)

	runtime.Notify("BidAccepted", seller, bidder, offer.Price)
}

// GetBid returns the offer currently held in the bidder's slot. A free slot
// reads as a zero-valued offer.
func GetBid(bidder interop.Hash160, slotID []byte) Offer {
	ctx := storage.GetReadOnlyContext()
	return getOffer(ctx, common.SlotKey(offerPrefix, bidder, slotID))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getOffer(ctx storage.Context, key []byte) Offer {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(Offer)
	}

	return Offer{}
}

func isOpen(o Offer) bool {
	return len(o.Token) == interop.Hash160Len && o.Amount > 0 && o.Price > 0
}
