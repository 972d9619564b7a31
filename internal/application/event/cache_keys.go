package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// cacheKeyPublicList derives a deterministic key from the normalized
// (city, category, page) triple; absent filters hash as empty strings.
// Key: events:public:list:{hash_of_params}
func cacheKeyPublicList(f ListFilter) string {
	raw := fmt.Sprintf("city:%s|category:%s|page:%d", f.City, f.Category, f.Page)
	hash := sha256.Sum256([]byte(raw))
	return "events:public:list:" + hex.EncodeToString(hash[:])
}
