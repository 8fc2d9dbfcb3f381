package tests

import (
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	auctionPath = "../auction"
	biddingPath = "../bidding"
	stakingPath = "../staking"
	storePath   = "../store"
	swapPath    = "../swap"
	tradingPath = "../trading"
	tokenPath   = "../internal/testcontracts/nep17token"
	clientPath  = "../internal/testcontracts/marketclient"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func deployContract(t *testing.T, e *neotest.Executor, srcPath string, args []any) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, srcPath, path.Join(srcPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func deployStoreContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	return deployContract(t, e, storePath, []any{e.CommitteeHash})
}

func deployTokenContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	return deployContract(t, e, tokenPath, nil)
}

// deployTokenContractNamed deploys another instance of the test token under a
// different manifest name, so that its contract hash does not collide with an
// already deployed instance.
func deployTokenContractNamed(t *testing.T, e *neotest.Executor, name string) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath, path.Join(tokenPath, "config.yml"))
	manif := *c.Manifest
	manif.Name = name
	named := &neotest.Contract{
		Hash:     state.CreateContractHash(e.CommitteeHash, c.NEF.Checksum, name),
		NEF:      c.NEF,
		Manifest: &manif,
	}
	e.DeployContract(t, named, nil)
	return named.Hash
}

func deployMarketClient(t *testing.T, e *neotest.Executor) util.Uint160 {
	return deployContract(t, e, clientPath, nil)
}

// registerInStore puts the contract on the store ledger allow list.
func registerInStore(t *testing.T, e *neotest.Executor, store util.Uint160, contracts ...util.Uint160) {
	args := make([]any, len(contracts))
	for i := range contracts {
		args[i] = contracts[i]
	}
	e.CommitteeInvoker(store).Invoke(t, nil, "setup", args)
}

func mintTokens(t *testing.T, e *neotest.Executor, token util.Uint160, to util.Uint160, amount int64) {
	e.CommitteeInvoker(token).Invoke(t, nil, "mint", to, amount)
}

func tokenBalance(t *testing.T, e *neotest.Executor, token util.Uint160, acc util.Uint160) int64 {
	s, err := e.CommitteeInvoker(token).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

// requireBytesResult invokes a safe method returning bytes and checks the
// result; getters of stored byte slices answer with Buffer stack items.
func requireBytesResult(t *testing.T, inv *neotest.ContractInvoker, expected []byte, method string, args ...any) {
	s, err := inv.TestInvoke(t, method, args...)
	require.NoError(t, err)
	actual, err := s.Pop().Item().TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func gasBalance(t *testing.T, e *neotest.Executor, acc util.Uint160) int64 {
	return e.Chain.GetUtilityTokenBalance(acc).Int64()
}

func gasInvoker(t *testing.T, e *neotest.Executor, signer neotest.Signer) *neotest.ContractInvoker {
	return e.NewInvoker(e.NativeHash(t, nativenames.Gas), signer)
}

// jumpToTime appends an empty block carrying the exact timestamp, so that
// the next transaction executes at timestamp+1.
func jumpToTime(t *testing.T, e *neotest.Executor, timestamp uint64) {
	b := e.NewUnsignedBlock(t)
	b.Timestamp = timestamp
	require.NoError(t, e.Chain.AddBlock(e.SignBlock(b)))
}

func blockTime(t *testing.T, e *neotest.Executor) uint64 {
	return e.TopBlock(t).Timestamp
}

func newSlotID() []byte {
	id := uuid.New()
	return id[:]
}
