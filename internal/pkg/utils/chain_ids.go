package utils

import (
	"strconv"
	"strings"
)

// JoinChainIDs renders chain ids as the comma-separated list upstream query strings expect.
func JoinChainIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}
