package staking

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

// Staker is the per-account state of the pool. A missing record reads as
// all zeros.
type Staker struct {
	// Amount is the staked principal.
	Amount int
	// LastClaimed is the lock time of the epoch the account last claimed in.
	LastClaimed int
	// WeekWithdraw is the amount withdrawn since the last claim.
	WeekWithdraw int
	// WeekStake is the amount staked since the last claim. It is excluded
	// from the reward base of the current epoch.
	WeekStake int
}

const (
	ownerKey           = "contractOwner"
	tokenKey           = "stakeToken"
	lockTimeKey        = "lockTime"
	weekTotalKey       = "weekTotalAssetAmount"
	distributionGasKey = "distributionGasAmount"
	configuredKey      = "configured"

	stakerPrefix = 'a'

	stakeMethod = "stake"
	claimMethod = "claim"

	// epochLength is the reward accrual window, 7 days in milliseconds.
	epochLength = 7 * 24 * 60 * 60 * 1000

	// claimFee is the exact GAS payment that must accompany a claim; the
	// same amount is held back from the payout as the fee reserve.
	claimFee = 201_000

	// stakeNumerator of a deposit is credited to the principal, the
	// 20 basis point haircut stays in the pool.
	stakeNumerator   = 9980
	stakeDenominator = 10000
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
		token interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.token) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, tokenKey, args.token)
	storage.Put(ctx, lockTimeKey, runtime.GetTime())

	runtime.Log("staking contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("staking contract updated")
}

// Setup opens the pool for deposits. One-time, owner only.
func Setup() {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	if common.GetInt(ctx, configuredKey) != 0 {
		panic("setup: pool already configured")
	}
	storage.Put(ctx, configuredKey, 1)

	runtime.Log("staking contract configured")
}

// OnNEP17Payment is a callback for NEP-17 transfers to the pool account.
//
// A transfer of the stake token with ["stake"] attached credits the sender:
// stakeNumerator/stakeDenominator of the transferred amount is added to the
// principal and to the week-stake counter.
//
// A GAS transfer of exactly claimFee with ["claim"] attached claims the
// sender's reward for the current epoch. The first claim arriving 7 days or
// more after the epoch lock time rolls the epoch: the pool's GAS and token
// balances are snapshot and the lock time advances to the current time.
// Payout is pro-rata over the token snapshot, excluding the principal
// staked within the current epoch, minus the fee reserve. One claim per
// epoch per account.
//
// A plain GAS transfer without data tops up the reward balance, this is how
// the distribution side funds the pool.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	caller := runtime.GetCallingScriptHash()

	if data == nil {
		if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
			panic("onNEP17Payment: unexpected asset")
		}
		runtime.Log("reward deposit received")
		return
	}

	args := data.([]interface{})
	method := args[0].(string)

	token := storage.Get(ctx, tokenKey).(interop.Hash160)
	if common.BytesEqual(caller, token) {
		if method != stakeMethod {
			panic("onNEP17Payment: unknown method")
		}
		stake(ctx, from, amount)
		return
	}

	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: unexpected asset")
	}
	if method != claimMethod {
		panic("onNEP17Payment: unknown method")
	}
	claim(ctx, from, amount)
}

func stake(ctx storage.Context, staker interop.Hash160, amount int) {
	if common.GetInt(ctx, configuredKey) == 0 {
		panic("stake: pool is not configured")
	}
	if amount <= 0 {
		panic("stake: non positive amount")
	}

	credited := amount * stakeNumerator / stakeDenominator
	key := common.AccountKey(stakerPrefix, staker)
	acc := getStaker(ctx, key)
	acc.Amount += credited
	acc.WeekStake += credited
	common.SetSerialized(ctx, key, acc)

	runtime.Notify("Stake", staker, credited)
}

// Withdraw releases amount of staked tokens back to the staker. Can be
// invoked only by the staker, for no more than their principal.
func Withdraw(staker interop.Hash160, amount int) {
	common.CheckWitness(staker)

	ctx := storage.GetContext()
	if amount <= 0 {
		panic("withdraw: non positive amount")
	}

	key := common.AccountKey(stakerPrefix, staker)
	acc := getStaker(ctx, key)
	if amount > acc.Amount {
		panic("withdraw: amount exceeds staked principal")
	}

	// the principal is debited before the release transfer goes out, the
	// receive callback of a contract staker observes the new record
	acc.Amount -= amount
	acc.WeekWithdraw += amount
	common.SetSerialized(ctx, key, acc)

	token := storage.Get(ctx, tokenKey).(interop.Hash160)
	common.SendTokens(token, staker, amount)

	runtime.Notify("Withdraw", staker, amount)
}

func claim(ctx storage.Context, staker interop.Hash160, fee int) {
	if fee != claimFee {
		panic("claim: incorrect claim fee")
	}

	key := common.AccountKey(stakerPrefix, staker)
	acc := getStaker(ctx, key)
	if acc.Amount <= 0 {
		panic("claim: nothing staked")
	}

	// lazy epoch roll on the first claim crossing the boundary, before the
	// per-account gate so that last epoch's claimer can trigger it too
	lockTime := common.GetInt(ctx, lockTimeKey)
	now := runtime.GetTime()
	if now >= lockTime+epochLength {
		token := storage.Get(ctx, tokenKey).(interop.Hash160)
		storage.Put(ctx, distributionGasKey, gas.BalanceOf(runtime.GetExecutingScriptHash()))
		storage.Put(ctx, weekTotalKey, common.TokenBalance(token))
		lockTime = now
		storage.Put(ctx, lockTimeKey, lockTime)
		runtime.Log("reward epoch rolled")
	}

	if lockTime <= acc.LastClaimed {
		panic("claim: already claimed in this epoch")
	}

	weekTotal := common.GetInt(ctx, weekTotalKey)
	if weekTotal <= 0 {
		panic("claim: no reward snapshot yet")
	}

	payout := (acc.Amount-acc.WeekStake)*common.GetInt(ctx, distributionGasKey)/weekTotal - claimFee

	// the claim is recorded before the payout goes out
	acc.LastClaimed = lockTime
	acc.WeekWithdraw = 0
	acc.WeekStake = 0
	common.SetSerialized(ctx, key, acc)

	common.SendGas(staker, payout)

	runtime.Notify("Claim", staker, payout)
}

// SetTimelock overwrites the current epoch lock time. Administrative, owner
// only.
func SetTimelock(lockTime int) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	storage.Put(ctx, lockTimeKey, lockTime)
}

// Token returns the script hash of the stake token.
func Token() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenKey).(interop.Hash160)
}

// LockTime returns the start of the current reward epoch in milliseconds.
func LockTime() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, lockTimeKey)
}

// WeekTotalAssetAmount returns the pool token balance snapshot of the
// current epoch.
func WeekTotalAssetAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, weekTotalKey)
}

// DistributionGasAmount returns the pool GAS balance snapshot of the
// current epoch.
func DistributionGasAmount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, distributionGasKey)
}

// StakeOf returns the per-account pool state of the staker.
func StakeOf(staker interop.Hash160) Staker {
	ctx := storage.GetReadOnlyContext()
	return getStaker(ctx, common.AccountKey(stakerPrefix, staker))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getStaker(ctx storage.Context, key []byte) Staker {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(Staker)
	}

	return Staker{}
}
