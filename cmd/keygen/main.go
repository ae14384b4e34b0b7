package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/mirzahilmi/amtrak-trains/internal/archive"
)

// Prints a fresh SSE-C key for AMTRAK_ARCHIVE_SECRET_KEY and its MD5 digest.
func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalln(err)
	}
	keyEnc := base64.StdEncoding.EncodeToString(key)
	digestEnc, err := archive.KeyDigest(keyEnc)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(keyEnc)
	fmt.Println(digestEnc)
}
