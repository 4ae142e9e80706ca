// File: utils/constants.go
package utils

// DraftCachePrefix is the prefix used for Redis draft keys.
const DraftCachePrefix = "draft:"
