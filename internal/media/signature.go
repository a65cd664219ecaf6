package media

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// signParams produces the Cloudinary request signature: the parameters
// sorted by key, joined as key=value with '&', concatenated with the API
// secret and SHA-1 hashed. file, api_key and signature itself are never
// part of the signed string.
func signParams(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		switch k {
		case "file", "api_key", "signature", "resource_type":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(params[k], ","))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// encodeContext serializes custom context metadata to Cloudinary's
// "k=v|k2=v2" form, escaping the two structural characters.
func encodeContext(ctx map[string]string) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	escape := strings.NewReplacer("=", `\=`, "|", `\|`)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, escape.Replace(k)+"="+escape.Replace(ctx[k]))
	}
	return strings.Join(pairs, "|")
}
