package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	epochLengthMS = 7 * 24 * 60 * 60 * 1000
	claimFee      = 201_000
)

type stakingSetup struct {
	e     *neotest.Executor
	hash  util.Uint160
	token util.Uint160
}

func newStakingSetup(t *testing.T) *stakingSetup {
	e := newExecutor(t)
	token := deployTokenContract(t, e)
	hash := deployContract(t, e, stakingPath, []any{e.CommitteeHash, token})

	return &stakingSetup{e: e, hash: hash, token: token}
}

func (s *stakingSetup) setup(t *testing.T) {
	s.e.CommitteeInvoker(s.hash).Invoke(t, nil, "setup")
}

func (s *stakingSetup) stake(t *testing.T, staker neotest.Signer, amount int64) {
	s.e.NewInvoker(s.token, staker).Invoke(t, true, "transfer",
		staker.ScriptHash(), s.hash, amount, []any{"stake"})
}

func (s *stakingSetup) claim(t *testing.T, staker neotest.Signer) {
	gasInvoker(t, s.e, staker).Invoke(t, true, "transfer",
		staker.ScriptHash(), s.hash, int64(claimFee), []any{"claim"})
}

func (s *stakingSetup) fundRewards(t *testing.T, amount int64) {
	gasInvoker(t, s.e, s.e.Validator).Invoke(t, true, "transfer",
		s.e.Validator.ScriptHash(), s.hash, amount, nil)
}

// requireStaker checks the per-account pool record: principal, last claimed
// time, week withdraw and week stake.
func (s *stakingSetup) requireStaker(t *testing.T, staker util.Uint160, amount, lastClaimed, weekWithdraw, weekStake int64) {
	res, err := s.e.CommitteeInvoker(s.hash).TestInvoke(t, "stakeOf", staker)
	require.NoError(t, err)

	fields := res.Pop().Array()
	requireIntItem(t, amount, fields[0])
	requireIntItem(t, lastClaimed, fields[1])
	requireIntItem(t, weekWithdraw, fields[2])
	requireIntItem(t, weekStake, fields[3])
}

func TestStakingSetup(t *testing.T) {
	s := newStakingSetup(t)
	staker := s.e.NewAccount(t)
	mintTokens(t, s.e, s.token, staker.ScriptHash(), 10_000)

	s.e.NewInvoker(s.token, staker).InvokeFail(t, "stake: pool is not configured",
		"transfer", staker.ScriptHash(), s.hash, int64(10_000), []any{"stake"})

	stranger := s.e.NewAccount(t)
	s.e.NewInvoker(s.hash, stranger).InvokeFail(t, "owner witness check failed", "setup")

	s.setup(t)
	s.e.CommitteeInvoker(s.hash).InvokeFail(t, "setup: pool already configured", "setup")

	s.stake(t, staker, 10_000)
	s.requireStaker(t, staker.ScriptHash(), 9_980, 0, 0, 9_980)
}

func TestStakingStakeAndWithdraw(t *testing.T) {
	s := newStakingSetup(t)
	s.setup(t)

	staker := s.e.NewAccount(t)
	mintTokens(t, s.e, s.token, staker.ScriptHash(), 10_000)

	// a 20 basis point haircut stays in the pool
	s.stake(t, staker, 10_000)
	s.requireStaker(t, staker.ScriptHash(), 9_980, 0, 0, 9_980)
	require.Equal(t, int64(10_000), tokenBalance(t, s.e, s.token, s.hash))

	inv := s.e.NewInvoker(s.hash, staker)
	inv.InvokeFail(t, "withdraw: amount exceeds staked principal",
		"withdraw", staker.ScriptHash(), int64(9_981))

	stranger := s.e.NewAccount(t)
	s.e.NewInvoker(s.hash, stranger).InvokeFail(t, "witness check failed",
		"withdraw", staker.ScriptHash(), int64(1_000))

	inv.Invoke(t, nil, "withdraw", staker.ScriptHash(), int64(1_000))
	s.requireStaker(t, staker.ScriptHash(), 8_980, 0, 1_000, 9_980)
	require.Equal(t, int64(1_000), tokenBalance(t, s.e, s.token, staker.ScriptHash()))
}

func TestStakingWithdrawReentrancy(t *testing.T) {
	s := newStakingSetup(t)
	s.setup(t)

	staker := s.e.NewAccount(t)
	mintTokens(t, s.e, s.token, staker.ScriptHash(), 10_000)
	s.stake(t, staker, 10_000)

	client := deployMarketClient(t, s.e)
	mintTokens(t, s.e, s.token, client, 10_000)

	clientInv := s.e.CommitteeInvoker(client)
	clientInv.Invoke(t, nil, "stake", s.hash, s.token, int64(10_000))
	require.Equal(t, int64(20_000), tokenBalance(t, s.e, s.token, s.hash))

	// the released principal lands in the client's receive callback which
	// withdraws again; the repeated call sees the debited record and must
	// abort the whole transaction
	clientInv.Invoke(t, nil, "arm", s.hash, "withdraw", []byte{}, int64(9_980))
	clientInv.InvokeFail(t, "withdraw: amount exceeds staked principal", "run")

	require.Equal(t, int64(20_000), tokenBalance(t, s.e, s.token, s.hash))
	s.requireStaker(t, client, 9_980, 0, 0, 9_980)
}

func TestStakingClaim(t *testing.T) {
	s := newStakingSetup(t)
	s.setup(t)

	staker := s.e.NewAccount(t)
	mintTokens(t, s.e, s.token, staker.ScriptHash(), 10_000)
	s.stake(t, staker, 10_000)

	stakerGas := gasInvoker(t, s.e, staker)
	stakerGas.InvokeFail(t, "claim: incorrect claim fee", "transfer",
		staker.ScriptHash(), s.hash, int64(claimFee-1), []any{"claim"})

	stranger := s.e.NewAccount(t)
	gasInvoker(t, s.e, stranger).InvokeFail(t, "claim: nothing staked", "transfer",
		stranger.ScriptHash(), s.hash, int64(claimFee), []any{"claim"})

	// no epoch has rolled yet, there is nothing to distribute
	stakerGas.InvokeFail(t, "claim: no reward snapshot yet", "transfer",
		staker.ScriptHash(), s.hash, int64(claimFee), []any{"claim"})

	s.fundRewards(t, 1_000_000)

	// pull the lock time back so that the next claim rolls the epoch
	now := blockTime(t, s.e)
	s.e.CommitteeInvoker(s.hash).Invoke(t, nil, "setTimelock", int64(now-epochLengthMS-1))

	// principal staked within the epoch is excluded from the reward base, so
	// the first claim pays nothing, but resets the week counters
	s.claim(t, staker)
	lockTime1 := int64(blockTime(t, s.e))
	s.requireStaker(t, staker.ScriptHash(), 9_980, lockTime1, 0, 0)

	inv := s.e.CommitteeInvoker(s.hash)
	inv.Invoke(t, int64(10_000), "weekTotalAssetAmount")
	inv.Invoke(t, lockTime1, "lockTime")

	// within the same epoch a second claim is rejected
	stakerGas.InvokeFail(t, "claim: already claimed in this epoch", "transfer",
		staker.ScriptHash(), s.hash, int64(claimFee), []any{"claim"})

	s.fundRewards(t, 2_000_000)
	poolBalance := gasBalance(t, s.e, s.hash)

	jumpToTime(t, s.e, uint64(lockTime1)+epochLengthMS+10)
	s.claim(t, staker)
	lockTime2 := int64(blockTime(t, s.e))

	// the claim fee itself lands on the pool before the snapshot
	distributionGas := poolBalance + claimFee
	payout := 9_980*distributionGas/10_000 - claimFee
	require.Equal(t, distributionGas-payout, gasBalance(t, s.e, s.hash))

	s.requireStaker(t, staker.ScriptHash(), 9_980, lockTime2, 0, 0)
	inv.Invoke(t, distributionGas, "distributionGasAmount")
	inv.Invoke(t, lockTime2, "lockTime")
}
