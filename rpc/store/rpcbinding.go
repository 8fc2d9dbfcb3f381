// Package store contains RPC wrappers for the store contract.
package store

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// TotalSoldAmount invokes `totalSoldAmount` method of contract.
func (c *ContractReader) TotalSoldAmount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSoldAmount"))
}

// TotalBoughtAmount invokes `totalBoughtAmount` method of contract.
func (c *ContractReader) TotalBoughtAmount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalBoughtAmount"))
}

// SoldAmount invokes `soldAmount` method of contract.
func (c *ContractReader) SoldAmount(account util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "soldAmount", account))
}

// BoughtAmount invokes `boughtAmount` method of contract.
func (c *ContractReader) BoughtAmount(account util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "boughtAmount", account))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Volumes is a convenience wrapper reading both per-account volumes of the
// account at once.
func (c *ContractReader) Volumes(account util.Uint160) (sold, bought *big.Int, err error) {
	sold, err = c.SoldAmount(account)
	if err != nil {
		return nil, nil, err
	}
	bought, err = c.BoughtAmount(account)
	if err != nil {
		return nil, nil, err
	}
	return sold, bought, nil
}
