// Command dump prints the trading volumes accumulated by the marketplace
// store contract: suite-wide totals plus per-account sold and bought
// amounts read directly from the contract storage.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"

	rpcstore "github.com/algoverse-exchange/marketplace-contract/rpc/store"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

const (
	soldPrefix   = 's'
	boughtPrefix = 'b'
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	storeHashLE := flag.String("contract", "", "Script hash of the store contract (LE hex)")
	raw := flag.Bool("raw", false, "Additionally print raw storage items (base58 key/value)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *storeHashLE == "":
		log.Fatal("missing store contract hash")
	}

	storeHash, err := util.Uint160DecodeStringLE(*storeHashLE)
	if err != nil {
		log.Fatal(fmt.Errorf("decode store contract hash: %w", err))
	}

	if err := _dump(*neoRPCEndpoint, storeHash, *raw); err != nil {
		log.Fatal(err)
	}
}

func _dump(neoBlockchainRPCEndpoint string, storeHash util.Uint160, raw bool) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	reader := rpcstore.NewReader(invoker.New(b.rpc, nil), storeHash)

	totalSold, err := reader.TotalSoldAmount()
	if err != nil {
		return fmt.Errorf("read total sold amount: %w", err)
	}
	totalBought, err := reader.TotalBoughtAmount()
	if err != nil {
		return fmt.Errorf("read total bought amount: %w", err)
	}

	fmt.Printf("total sold:   %s\n", totalSold)
	fmt.Printf("total bought: %s\n", totalBought)

	sold := make(map[util.Uint160]*big.Int)
	bought := make(map[util.Uint160]*big.Int)
	accounts := make(map[util.Uint160]struct{})

	err = b.iterateContractStorage(storeHash, func(key, value []byte) error {
		if raw {
			fmt.Printf("raw: %s = %s\n", base58.Encode(key), base58.Encode(value))
		}

		if len(key) != 1+util.Uint160Size {
			return nil
		}

		account, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("decode account script hash from storage key: %w", err)
		}

		switch key[0] {
		case soldPrefix:
			sold[account] = bigint.FromBytes(value)
			accounts[account] = struct{}{}
		case boughtPrefix:
			bought[account] = bigint.FromBytes(value)
			accounts[account] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate store contract storage: %w", err)
	}

	for account := range accounts {
		s, ok := sold[account]
		if !ok {
			s = big.NewInt(0)
		}
		bt, ok := bought[account]
		if !ok {
			bt = big.NewInt(0)
		}
		fmt.Printf("%s: sold %s, bought %s\n", address.Uint160ToString(account), s, bt)
	}

	return nil
}
