package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// OpenExamsKey returns the cache key for the open-exam listing.
func (r *CacheKeyStruct) OpenExamsKey() string {
	return "exams:open"
}

// CertificateVerifyKey returns the cache key for a certificate verification
// lookup. The number is normalized the same way the lookup normalizes input.
func (r *CacheKeyStruct) CertificateVerifyKey(number string) string {
	return fmt.Sprintf("certificate:verify:%s", strings.ToUpper(strings.TrimSpace(number)))
}

var CacheKey = NewCacheKeyStruct()
