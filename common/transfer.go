package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// SendGas pays amount of GAS from the executing contract to the account. The
// transfer is skipped when the contract balance cannot cover it: payout
// paths must not fault destructively on a drained balance, a settlement
// that requires the full amount has to check the balance itself.
func SendGas(account interop.Hash160, amount int) {
	if amount <= 0 {
		return
	}

	contractHash := runtime.GetExecutingScriptHash()
	if gas.BalanceOf(contractHash) < amount {
		runtime.Log("not enough balance to send payment, skipped")
		return
	}

	if !gas.Transfer(contractHash, account, amount, nil) {
		panic("failed to send GAS")
	}
}

// SettleGas pays amount of GAS out of the executing contract in the standard
// marketplace proportion: PrimaryShare to the primary recipient and
// ServiceShare to each of the team wallet and the distribution contract.
func SettleGas(primary, teamWallet, distribution interop.Hash160, amount int) {
	SendGas(primary, PrimaryShare(amount))
	SendGas(teamWallet, ServiceShare(amount))
	SendGas(distribution, ServiceShare(amount))
}

// SendTokens moves NEP-17 tokens held by the executing contract to the
// account. It panics if the token contract reports a failed transfer.
func SendTokens(token, account interop.Hash160, amount int) {
	if amount <= 0 {
		return
	}

	contractHash := runtime.GetExecutingScriptHash()
	ok := contract.Call(token, "transfer", contract.All,
		contractHash, account, amount, nil).(bool)
	if !ok {
		panic("failed to transfer tokens")
	}
}

// TokenBalance returns the executing contract's balance of the NEP-17 token.
func TokenBalance(token interop.Hash160) int {
	return contract.Call(token, "balanceOf", contract.ReadOnly,
		runtime.GetExecutingScriptHash()).(int)
}
