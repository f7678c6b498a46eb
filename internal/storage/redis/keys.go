package redis

import "fmt"

// Key prefix for all client data
const keyPrefix = "piranhas"

// evaluationKey returns the Redis key for a board evaluation
func evaluationKey(boardKey string) string {
	return fmt.Sprintf("%s:eval:%s", keyPrefix, boardKey)
}
