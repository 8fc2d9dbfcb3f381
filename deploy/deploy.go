// Package deploy provides the deployment procedure of the marketplace
// contract suite onto a Neo blockchain network.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the marketplace suite deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns an error with 'Unknown
	// contract' substring if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of a smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the marketplace suite deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the owner of every deployed contract.
	LocalAccount *wallet.Account

	// DistributionAddress receives the distribution share of every sale and
	// funds the staking rewards.
	DistributionAddress util.Uint160

	// TeamWallet receives the team share of every sale.
	TeamWallet util.Uint160

	// StakeToken is the NEP-17 asset accepted by the staking contract.
	StakeToken util.Uint160

	StoreContract   CommonDeployPrm
	AuctionContract CommonDeployPrm
	BiddingContract CommonDeployPrm
	TradingContract CommonDeployPrm
	StakingContract CommonDeployPrm
	SwapContract    CommonDeployPrm
}

// Deploy deploys the marketplace contract suite represented by the given
// Prm onto Prm.Blockchain and wires the contracts together: the store
// ledger goes first, the trade contracts are bound to it on deployment and
// registered in its allow list afterwards.
//
// Deploy is idempotent with respect to already deployed contracts: a
// contract whose address is already occupied on the chain is skipped, so
// an aborted procedure can simply be re-run.
func Deploy(ctx context.Context, prm Prm) error {
	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	d := deployer{
		ctx:        ctx,
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      localActor,
		mgmt:       management.New(localActor),
		sender:     prm.LocalAccount.ScriptHash(),
	}

	storeHash, err := d.deployContract(prm.StoreContract, []any{d.sender})
	if err != nil {
		return fmt.Errorf("deploy store contract: %w", err)
	}

	tradeArgs := []any{d.sender, storeHash, prm.DistributionAddress, prm.TeamWallet}

	auctionHash, err := d.deployContract(prm.AuctionContract, tradeArgs)
	if err != nil {
		return fmt.Errorf("deploy auction contract: %w", err)
	}

	biddingHash, err := d.deployContract(prm.BiddingContract, tradeArgs)
	if err != nil {
		return fmt.Errorf("deploy bidding contract: %w", err)
	}

	tradingHash, err := d.deployContract(prm.TradingContract, tradeArgs)
	if err != nil {
		return fmt.Errorf("deploy trading contract: %w", err)
	}

	if _, err = d.deployContract(prm.StakingContract, []any{d.sender, prm.StakeToken}); err != nil {
		return fmt.Errorf("deploy staking contract: %w", err)
	}

	if _, err = d.deployContract(prm.SwapContract, []any{d.sender}); err != nil {
		return fmt.Errorf("deploy swap contract: %w", err)
	}

	prm.Logger.Info("registering trade contracts in the store ledger...")

	err = d.sendAndWait(func() (util.Uint256, uint32, error) {
		return localActor.SendCall(storeHash, "setup",
			[]any{auctionHash, biddingHash, tradingHash})
	})
	if err != nil {
		return fmt.Errorf("register trade contracts in the store ledger: %w", err)
	}

	prm.Logger.Info("marketplace suite successfully deployed")
	return nil
}

type deployer struct {
	ctx        context.Context
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	mgmt       *management.Contract
	sender     util.Uint160
}

// deployContract sends the deployment transaction of a single contract and
// waits for it to persist. An already deployed contract is detected by its
// address and skipped.
func (d *deployer) deployContract(prm CommonDeployPrm, args []any) (util.Uint160, error) {
	if err := d.ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	hash := state.CreateContractHash(d.sender, prm.NEF.Checksum, prm.Manifest.Name)

	alreadyDeployed, err := d.isDeployed(hash)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("check contract state on the chain: %w", err)
	}
	if alreadyDeployed {
		d.logger.Info("contract is already deployed, skipping",
			zap.String("name", prm.Manifest.Name), zap.Stringer("address", hash))
		return hash, nil
	}

	d.logger.Info("deploying contract...",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", hash))

	err = d.sendAndWait(func() (util.Uint256, uint32, error) {
		return d.mgmt.Deploy(&prm.NEF, &prm.Manifest, args)
	})
	if err != nil {
		return util.Uint160{}, err
	}

	d.logger.Info("contract successfully deployed",
		zap.String("name", prm.Manifest.Name), zap.Stringer("address", hash))
	return hash, nil
}

func (d *deployer) isDeployed(hash util.Uint160) (bool, error) {
	_, err := d.blockchain.GetContractStateByHash(hash)
	if err == nil {
		return true, nil
	}
	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}
	return false, err
}

func (d *deployer) sendAndWait(send func() (util.Uint256, uint32, error)) error {
	txHash, vub, err := send()
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	res, err := d.actor.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s to persist: %w", txHash.StringLE(), err)
	}
	if !res.VMState.HasFlag(vmstate.Halt) {
		return errors.New("transaction failed: " + res.FaultException)
	}
	return nil
}
