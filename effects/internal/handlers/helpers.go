package handlers

import (
	"github.com/cespare/xxhash/v2"
)

// partitionIndex maps a partition key onto one of n workers.
func partitionIndex(key string, n int) int {
	switch n {
	case 0:
		panic("number of workers cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(n))
	}
}
