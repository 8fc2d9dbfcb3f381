// Package marketclient implements a contract-account client of the
// marketplace suite used by the test suite. It escrows GAS and tokens on its
// own behalf and can be armed with a marketplace call that its NEP-17
// receive callback repeats once, on the next incoming payment.
package marketclient

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	targetKey = "target"
	methodKey = "method"
	slotKey   = "slotID"
	amountKey = "amount"
)

// Bid places amount of GAS as a bid in the given auction contract.
func Bid(auction interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, auction, amount, []interface{}{"bid"}) {
		panic("failed to send GAS")
	}
}

// PlaceBid escrows price GAS in this account's slot of the bidding contract.
func PlaceBid(bidding interop.Hash160, slotID []byte, token interop.Hash160, amount, price int) {
	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, bidding, price, []interface{}{"bid", slotID, token, amount}) {
		panic("failed to send GAS")
	}
}

// Stake deposits amount of the token into the staking pool on behalf of this
// account.
func Stake(staking, token interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(token, "transfer", contract.All,
		self, staking, amount, []interface{}{"stake"}).(bool)
	if !ok {
		panic("failed to transfer tokens")
	}
}

// Arm stores a marketplace call for the next incoming NEP-17 payment to
// repeat. slotID and amount are consumed by the methods that take them.
func Arm(target interop.Hash160, method string, slotID []byte, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, targetKey, target)
	storage.Put(ctx, methodKey, method)
	storage.Put(ctx, slotKey, slotID)
	storage.Put(ctx, amountKey, amount)
}

// Run performs the stored call right away, leaving it armed.
func Run() {
	ctx := storage.GetContext()
	call(ctx, storage.Get(ctx, methodKey).(string))
}

// OnNEP17Payment accepts any deposit; an armed client disarms itself and
// repeats the stored call before returning.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetContext()
	if storage.Get(ctx, methodKey) == nil {
		return
	}

	method := storage.Get(ctx, methodKey).(string)
	storage.Delete(ctx, methodKey)
	call(ctx, method)
}

func call(ctx storage.Context, method string) {
	target := storage.Get(ctx, targetKey).(interop.Hash160)
	self := runtime.GetExecutingScriptHash()

	switch method {
	case "cancel":
		contract.Call(target, method, contract.All, self, storage.Get(ctx, slotKey).([]byte))
	case "withdraw":
		contract.Call(target, method, contract.All, self, storage.Get(ctx, amountKey).(int))
	case "close":
		contract.Call(target, method, contract.All)
	default:
		panic("unknown client method")
	}
}
