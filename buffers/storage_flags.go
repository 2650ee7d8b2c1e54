package buffers

import "github.com/telrender/tel/gpu"

// StorageFlags are the flags of an immutable buffer store.
// Full docs can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferStorage.xhtml
type StorageFlags uint32

const (
	// Data is set once at creation and never touched by the CPU again
	StorageFlags_None StorageFlags = 0

	// Contents can be changed with glBufferSubData
	StorageFlags_Dynamic  StorageFlags = gpu.DYNAMIC_STORAGE_BIT
	StorageFlags_MapRead  StorageFlags = gpu.MAP_READ_BIT
	StorageFlags_MapWrite StorageFlags = gpu.MAP_WRITE_BIT
	// Hint that the store should live in client memory
	StorageFlags_Client   StorageFlags = gpu.CLIENT_STORAGE_BIT
)

func (f StorageFlags) ToGL() uint32 {
	return uint32(f)
}

func (f StorageFlags) Has(flag StorageFlags) bool {
	return f&flag == flag
}
