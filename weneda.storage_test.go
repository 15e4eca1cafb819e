package weneda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageDriverRegistry(t *testing.T) {
	drivers := ListStorageDrivers()
	assert.Contains(t, drivers, StorageDriverNameMemory)
	assert.Contains(t, drivers, StorageDriverNameFilesystem)
	assert.Contains(t, drivers, StorageDriverNamePostgres)
}

func TestOpenStorage_Memory(t *testing.T) {
	storage, err := OpenStorage(StorageDriverNameMemory, "")
	require.NoError(t, err)
	defer storage.Close()

	_, ok := storage.(*MemoryStorage)
	assert.True(t, ok)
}

func TestOpenStorage_Filesystem(t *testing.T) {
	storage, err := OpenStorage(StorageDriverNameFilesystem, t.TempDir())
	require.NoError(t, err)
	defer storage.Close()

	_, ok := storage.(*FilesystemStorage)
	assert.True(t, ok)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage("carrier-pigeon", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageDriverNotFound)
}

func TestRegisterStorageDriver_Collisions(t *testing.T) {
	assert.Panics(t, func() {
		RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
	})
	assert.Panics(t, func() {
		RegisterStorageDriver("nil-driver", nil)
	})
}
