/*
Package staking contains implementation of the reward pool contract of the
marketplace suite. Accounts deposit the marketplace token and share the GAS
inflow the pool receives from the marketplace fee split, pro-rata over
weekly epochs.

Deposits are plain NEP-17 transfers of the stake token with ["stake"]
attached; 20 basis points of every deposit stay in the pool. Withdrawals
release principal at any time. Claims carry a fixed GAS fee: the first
claim arriving seven days or more after the epoch lock time rolls the
epoch, snapshotting the pool's GAS and token balances, and every account can
claim once per epoch. Principal staked within the current epoch is excluded
from its reward base, so staking right before a claim earns nothing until
the next epoch.

Reward GAS reaches the pool as plain transfers without data, typically from
the distribution address that collects its share of every marketplace
settlement.

# Contract notifications

Stake notification. Emitted on every credited deposit:

	Stake
	  - name: staker
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification. Emitted on every released withdrawal:

	Withdraw
	  - name: staker
	    type: Hash160
	  - name: amount
	    type: Integer

Claim notification. Emitted on every successful claim:

	Claim
	  - name: staker
	    type: Hash160
	  - name: payout
	    type: Integer
*/
package staking
