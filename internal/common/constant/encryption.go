package constant

// Pulled from the site's RoutesList.v.json: s[8], v[32] and arr[179].
const (
	CIPHER_SALT_HEX    = "9a3686ac"
	CIPHER_IV_HEX      = "c6eb2f7f5c4740c1a2f708fefd947d39"
	CIPHER_PUBLIC_KEY  = "69af143c-e8cf-47f8-bf09-fc1f61e5cc33"
	CIPHER_ITERATIONS  = 1000
	CIPHER_KEY_SIZE    = 16
	PRIVATE_KEY_LENGTH = 88
	PRIVATE_KEY_DELIM  = "|"
)

const (
	SSE_ALGORITHM = "AES256"
)
