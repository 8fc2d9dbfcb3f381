package swap

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

// Token holds the liquidity token info of the pool.
type Token struct {
	// Ticker symbol.
	Symbol string
	// Amount of decimals.
	Decimals int
	// Storage key for the circulation value.
	CirculationKey string
}

const (
	symbol      = "ALVPOOL"
	decimals    = 6
	circulation = "TotalSupply"

	ownerKey  = "contractOwner"
	tokenAKey = "assetA"
	tokenBKey = "assetB"
	feesKey   = "collectedFees"

	accPrefix = 'a'
)

var token Token

func init() {
	token = Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

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
	storage.Put(ctx, circulation, 0)
	storage.Put(ctx, feesKey, 0)

	runtime.Log("swap contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("swap contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible GAS contract. It takes
// the bootstrap fee deposit when the attached data is ["bootstrapFee"].
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: unexpected asset")
	}

	args := data.([]interface{})
	if len(args) == 0 {
		panic("onNEP17Payment: missing method marker")
	}
	if args[0].(string) != "bootstrapFee" {
		panic("onNEP17Payment: unknown method")
	}
	if amount <= 0 {
		panic("onNEP17Payment: non positive fee")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, feesKey, common.GetInt(ctx, feesKey)+amount)
}

// Bootstrap binds the pool to an asset pair. Assets must be passed in
// canonical order: A strictly greater than B bytewise, B may be empty to
// denote the GAS side of the pair. The accumulated bootstrap fee deposit is
// consumed. Owner only, one-time.
func Bootstrap(tokenA, tokenB interop.Hash160) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	if storage.Get(ctx, tokenAKey) != nil {
		panic("bootstrap: pool already bootstrapped")
	}
	if len(tokenA) != interop.Hash160Len {
		panic("bootstrap: incorrect length of asset script hash")
	}
	if len(tokenB) != 0 && len(tokenB) != interop.Hash160Len {
		panic("bootstrap: incorrect length of asset script hash")
	}
	// bytewise order, comparison operators on the VM treat byte strings as
	// integers
	if std.MemoryCompare(tokenA, tokenB) <= 0 {
		panic("bootstrap: assets must be in canonical order")
	}

	fees := common.GetInt(ctx, feesKey)
	if fees <= 0 {
		panic("bootstrap: fee deposit required")
	}

	storage.Put(ctx, tokenAKey, tokenA)
	storage.Put(ctx, tokenBKey, tokenB)
	storage.Put(ctx, feesKey, 0)

	runtime.Notify("Bootstrap", tokenA, tokenB, fees)
	runtime.Log("pool bootstrapped")
}

// Swap exchanges one pool asset for the other. Reserved.
func Swap(account interop.Hash160, assetIn interop.Hash160, amountIn int) {
	panic("swap: not implemented")
}

// Mint adds liquidity to the pool, issuing liquidity tokens. Reserved.
func Mint(account interop.Hash160, amountA, amountB int) {
	panic("mint: not implemented")
}

// Burn removes liquidity from the pool, redeeming liquidity tokens.
// Reserved.
func Burn(account interop.Hash160, amount int) {
	panic("burn: not implemented")
}

// Verify checks the owner witness, allowing the owner to sign transactions
// on behalf of the pool account.
func Verify() bool {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	return runtime.CheckWitness(owner)
}

// Fees returns the accumulated bootstrap fee deposit.
func Fees() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, feesKey)
}

// AssetA returns the script hash of the first pool asset. It returns nil
// until the pool is bootstrapped.
func AssetA() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	h := storage.Get(ctx, tokenAKey)
	if h == nil {
		return nil
	}
	return h.(interop.Hash160)
}

// AssetB returns the script hash of the second pool asset. An empty value
// denotes GAS.
func AssetB() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	h := storage.Get(ctx, tokenBKey)
	if h == nil {
		return nil
	}
	return h.(interop.Hash160)
}

// Symbol is a NEP-17 method that returns the ticker of the liquidity token.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 method that returns the precision of the liquidity
// token.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 method that returns the amount of liquidity
// tokens in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, token.CirculationKey)
}

// BalanceOf is a NEP-17 method that returns the liquidity token balance of
// the account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, common.AccountKey(accPrefix, account))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}
