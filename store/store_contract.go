package store

import (
	"github.com/algoverse-exchange/marketplace-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	ownerKey       = "contractOwner"
	totalSoldKey   = "totalSoldAmount"
	totalBoughtKey = "totalBoughtAmount"

	soldPrefix    = 's'
	boughtPrefix  = 'b'
	trustedPrefix = 'r'
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, totalSoldKey, 0)
	storage.Put(ctx, totalBoughtKey, 0)

	runtime.Log("store contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("store contract updated")
}

// Setup registers marketplace contracts whose volume calls are trusted.
// Owner only.
func Setup(contracts []interop.Hash160) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	for i := 0; i < len(contracts); i++ {
		h := contracts[i]
		if len(h) != interop.Hash160Len {
			panic("setup: incorrect length of contract script hash")
		}
		storage.Put(ctx, common.AccountKey(trustedPrefix, h), 1)
	}

	runtime.Log("store contract configured")
}

// Buy records a settled purchase reported by the bidding contract: amount
// is added to the seller's sold volume, the buyer's bought volume and both
// running totals.
func Buy(seller, buyer interop.Hash160, amount int) {
	record(seller, buyer, amount)
	runtime.Notify("Buy", seller, buyer, amount)
}

// Sell records a settled sale reported by the trading contract. Bookkeeping
// is identical to Buy.
func Sell(seller, buyer interop.Hash160, amount int) {
	record(seller, buyer, amount)
	runtime.Notify("Sell", seller, buyer, amount)
}

// Auction records a settled auction reported by the auction contract.
// Bookkeeping is identical to Buy.
func Auction(seller, buyer interop.Hash160, amount int) {
	record(seller, buyer, amount)
	runtime.Notify("Auction", seller, buyer, amount)
}

// SetSold overwrites the account's sold volume with an absolute value and
// adjusts the running total by the difference. Administrative, owner only.
func SetSold(account interop.Hash160, amount int) {
	set(account, amount, soldPrefix, totalSoldKey)
}

// SetBought overwrites the account's bought volume with an absolute value
// and adjusts the running total by the difference. Administrative, owner
// only.
func SetBought(account interop.Hash160, amount int) {
	set(account, amount, boughtPrefix, totalBoughtKey)
}

// Reset zeroes the volumes of every account in the batch and backs both
// running totals out by the amounts being zeroed. Administrative, owner
// only.
func Reset(accounts []interop.Hash160) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	totalSold := common.GetInt(ctx, totalSoldKey)
	totalBought := common.GetInt(ctx, totalBoughtKey)

	for i := 0; i < len(accounts); i++ {
		soldKey := common.AccountKey(soldPrefix, accounts[i])
		boughtKey := common.AccountKey(boughtPrefix, accounts[i])

		totalSold -= common.GetInt(ctx, soldKey)
		totalBought -= common.GetInt(ctx, boughtKey)

		storage.Delete(ctx, soldKey)
		storage.Delete(ctx, boughtKey)
	}

	storage.Put(ctx, totalSoldKey, totalSold)
	storage.Put(ctx, totalBoughtKey, totalBought)

	runtime.Log("volumes reset")
}

// TotalSoldAmount returns the sum of all per-account sold volumes.
func TotalSoldAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalSoldKey)
}

// TotalBoughtAmount returns the sum of all per-account bought volumes.
func TotalBoughtAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalBoughtKey)
}

// SoldAmount returns the cumulative sold volume of the account.
func SoldAmount(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, common.AccountKey(soldPrefix, account))
}

// BoughtAmount returns the cumulative bought volume of the account.
func BoughtAmount(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, common.AccountKey(boughtPrefix, account))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func record(seller, buyer interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkTrusted(ctx)

	if len(seller) != interop.Hash160Len || len(buyer) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount <= 0 {
		panic("non positive amount")
	}

	soldKey := common.AccountKey(soldPrefix, seller)
	boughtKey := common.AccountKey(boughtPrefix, buyer)

	// totals are maintained as running deltas, never recomputed
	storage.Put(ctx, soldKey, common.GetInt(ctx, soldKey)+amount)
	storage.Put(ctx, boughtKey, common.GetInt(ctx, boughtKey)+amount)
	storage.Put(ctx, totalSoldKey, common.GetInt(ctx, totalSoldKey)+amount)
	storage.Put(ctx, totalBoughtKey, common.GetInt(ctx, totalBoughtKey)+amount)
}

func set(account interop.Hash160, amount int, prefix byte, totalKey string) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	if amount < 0 {
		panic("negative amount")
	}

	key := common.AccountKey(prefix, account)
	old := common.GetInt(ctx, key)

	storage.Put(ctx, key, amount)
	storage.Put(ctx, totalKey, common.GetInt(ctx, totalKey)-old+amount)
}

// checkTrusted permits a call coming from a registered marketplace contract
// or carrying the owner's witness.
func checkTrusted(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	if storage.Get(ctx, common.AccountKey(trustedPrefix, caller)) != nil {
		return
	}

	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)
}
