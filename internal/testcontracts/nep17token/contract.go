// Package nep17token implements a minimal mintable NEP-17 token used by the
// marketplace test suite in place of real asset contracts. Mint is left
// unauthenticated on purpose.
package nep17token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

const (
	supplyKey = "totalSupply"
	accPrefix = 'a'
)

func Symbol() string {
	return "TST"
}

func Decimals() int {
	return 0
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), supplyKey)
}

func BalanceOf(account interop.Hash160) int {
	return getInt(storage.GetReadOnlyContext(), accountKey(account))
}

// Mint credits the account with amount of tokens out of thin air.
func Mint(account interop.Hash160, amount int) {
	if amount <= 0 {
		panic("non positive amount")
	}
	ctx := storage.GetContext()
	storage.Put(ctx, accountKey(account), getInt(ctx, accountKey(account))+amount)
	storage.Put(ctx, supplyKey, getInt(ctx, supplyKey)+amount)
	runtime.Notify("Transfer", interop.Hash160(nil), account, amount)
}

func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount < 0 {
		panic("negative amount")
	}
	if !runtime.CheckWitness(from) && !util.Equals(string(runtime.GetCallingScriptHash()), string(from)) {
		return false
	}

	ctx := storage.GetContext()
	fromBalance := getInt(ctx, accountKey(from))
	if fromBalance < amount {
		return false
	}

	storage.Put(ctx, accountKey(from), fromBalance-amount)
	storage.Put(ctx, accountKey(to), getInt(ctx, accountKey(to))+amount)
	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
	return true
}

func accountKey(account interop.Hash160) []byte {
	return append([]byte{accPrefix}, account...)
}

func getInt(ctx storage.Context, key interface{}) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return val.(int)
}
