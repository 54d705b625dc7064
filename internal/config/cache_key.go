package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ProblemSessionKey returns the cache key for a problem session snapshot
func (r *CacheKeyStruct) ProblemSessionKey(sessionID string) string {
	return fmt.Sprintf("problem_session:%s", sessionID)
}

var CacheKey = NewCacheKeyStruct()
