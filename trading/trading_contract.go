package trading

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

// Listing is an open sale stored in a slot, the mirror of a bidding offer:
// here the asset is escrowed on the contract and the price is what the
// seller wants for it. A slot holds at most one open listing.
type Listing struct {
	// Token is the script hash of the escrowed NEP-17 token.
	Token interop.Hash160
	// Amount of the token held in escrow.
	Amount int
	// Price in GAS the seller asks.
	Price int
}

const (
	ownerKey         = "contractOwner"
	storeContractKey = "storeScriptHash"
	distributionKey  = "distributionAddress"
	teamWalletKey    = "teamWallet"

	listingPrefix = 'l'

	tradeMethod  = "trade"
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

	runtime.Log("trading contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("trading contract updated")
}

// OnNEP17Payment is a callback for NEP-17 transfers to the trading account.
//
// A token transfer with ["trade", slotID, price] attached opens a listing:
// the transferred tokens are escrowed, price is the GAS amount the seller
// asks. Replacing an open slot returns the previously escrowed tokens to
// the seller.
//
// A GAS transfer with ["accept", seller, slotID, amount] attached buys the
// listing in the seller's slot: the payment must equal the listed price and
// amount must equal the escrowed amount. The payment is split 97/1.5/1.5
// between the seller, the team wallet and the distribution contract, the
// escrowed tokens go to the buyer and the settled volume is recorded in the
// store ledger.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	caller := runtime.GetCallingScriptHash()
	args := data.([]interface{})

	if common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		if args[0].(string) != acceptMethod {
			panic("onNEP17Payment: unknown method")
		}
		accept(ctx, from, amount, args[1].(interop.Hash160), args[2].([]byte), args[3].(int))
		return
	}

	if args[0].(string) != tradeMethod {
		panic("onNEP17Payment: unknown method")
	}
	list(ctx, from, caller, amount, args[1].([]byte), args[2].(int))
}

func list(ctx storage.Context, seller, token interop.Hash160, amount int, slotID []byte, price int) {
	if amount <= 0 {
		panic("trade: non positive token amount")
	}
	if price <= 0 {
		panic("trade: non positive price")
	}

	key := common.SlotKey(listingPrefix, seller, slotID)
	prev := getListing(ctx, key)

	// the slot is overwritten before the old escrow goes back, the return
	// transfer callback observes the new listing
	common.SetSerialized(ctx, key, Listing{
		Token:  token,
		Amount: amount,
		Price:  price,
	})
	if isOpen(prev) {
		common.SendTokens(prev.Token, seller, prev.Amount)
	}

	runtime.Notify("ListingPlaced", seller, token, amount, price)
}

// Cancel withdraws the open listing in the caller's slot: the escrowed
// tokens are returned in full and the slot is zeroed. Can be invoked only
// by the slot owner.
func Cancel(seller interop.Hash160, slotID []byte) {
	common.CheckSellerWitness(seller)

	ctx := storage.GetContext()
	key := common.SlotKey(listingPrefix, seller, slotID)
	listing := getListing(ctx, key)
	if !isOpen(listing) {
		panic("cancel: slot is not open")
	}

	// the slot is freed before the escrow goes back
	storage.Delete(ctx, key)
	common.SendTokens(listing.Token, seller, listing.Amount)

	runtime.Notify("ListingCancelled", seller)
}

func accept(ctx storage.Context, buyer interop.Hash160, payment int, seller interop.Hash160, slotID []byte, amount int) {
	key := common.SlotKey(listingPrefix, seller, slotID)
	listing := getListing(ctx, key)
	if !isOpen(listing) {
		panic("accept: slot is not open")
	}
	if amount != listing.Amount {
		panic("accept: amount does not match the listing")
	}
	if payment != listing.Price {
		panic("accept: payment does not match the listed price")
	}

	// the slot is freed before any payout goes out
	storage.Delete(ctx, key)

	teamWallet := storage.Get(ctx, teamWalletKey).(interop.Hash160)
	distribution := storage.Get(ctx, distributionKey).(interop.Hash160)
	common.SettleGas(seller, teamWallet, distribution, listing.Price)

	common.SendTokens(listing.Token, buyer, listing.Amount)

	store := storage.Get(ctx, storeContractKey).(interop.Hash160)
	contract.Call(store, "sell", contract.All, seller, buyer, listing.Price)

	runtime.Notify("ListingAccepted", seller, buyer, listing.Price)
}

// GetListing returns the listing currently held in the seller's slot. A
// free slot reads as a zero-valued listing.
func GetListing(seller interop.Hash160, slotID []byte) Listing {
	ctx := storage.GetReadOnlyContext()
	return getListing(ctx, common.SlotKey(listingPrefix, seller, slotID))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getListing(ctx storage.Context, key []byte) Listing {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(Listing)
	}

	return Listing{}
}

func isOpen(l Listing) bool {
	return len(l.Token) == interop.Hash160Len && l.Amount > 0 && l.Price > 0
}
