package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt reads an integer value from contract storage. A missing key reads
// as zero.
func GetInt(ctx storage.Context, key interface{}) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// AccountKey builds a storage key for a per-account record: the prefix
// followed by the raw account script hash.
func AccountKey(prefix byte, account []byte) []byte {
	return append([]byte{prefix}, account...)
}

// SlotKey builds a storage key for a per-offer slot record. Slot identity is
// scoped to its owner, so one account can never open or displace another
// account's slot.
func SlotKey(prefix byte, owner []byte, slotID []byte) []byte {
	key := append([]byte{prefix}, owner...)
	return append(key, slotID...)
}
