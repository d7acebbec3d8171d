package testutils

import (
	"fmt"
	"sync"
)

// SequentialIDs returns an ID generator producing UUID-shaped values
// 00000001-0000-4000-8000-000000000001, 00000002-..., in order.
func SequentialIDs() func() string {
	var (
		mu      sync.Mutex
		counter uint64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		counter++
		return fmt.Sprintf("%08d-0000-4000-8000-%012d", counter, counter)
	}
}
