package trainsdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"github.com/mirzahilmi/amtrak-trains/internal/cryptojs"
)

var (
	ErrResponseTooShort = errors.New("trainsdata: encrypted response is shorter than the private key segment")
	ErrEmptyPrivateKey  = errors.New("trainsdata: private key segment decrypted to an empty key")
	ErrMissingResponse  = errors.New("trainsdata: decrypted document has no TrainsDataResponse")
	ErrNoFeatures       = errors.New("trainsdata: feature collection is empty")
	ErrKeySegmentLength = errors.New("trainsdata: private key segment must encrypt to 88 characters")
)

// Split cuts an encrypted response into the content ciphertext and the
// trailing private key ciphertext.
func Split(encrypted string) (contentHash, privateKeyHash string, err error) {
	if len(encrypted) < constant.PRIVATE_KEY_LENGTH {
		return "", "", fmt.Errorf("%w: got %d characters", ErrResponseTooShort, len(encrypted))
	}
	n := len(encrypted) - constant.PRIVATE_KEY_LENGTH
	return encrypted[:n], encrypted[n:], nil
}

type Decrypter struct {
	PublicKey string
	Params    cryptojs.Params
}

func NewDecrypter(publicKey string, params cryptojs.Params) Decrypter {
	return Decrypter{PublicKey: publicKey, Params: params}
}

// PrivateKey recovers the per-response key from the trailing segment.
func (d Decrypter) PrivateKey(privateKeyHash string) (string, error) {
	plain, err := cryptojs.Decrypt(privateKeyHash, d.PublicKey, d.Params)
	if err != nil {
		return "", fmt.Errorf("trainsdata: decrypt private key: %w", err)
	}
	key, _, _ := strings.Cut(plain, constant.PRIVATE_KEY_DELIM)
	if key == "" {
		return "", ErrEmptyPrivateKey
	}
	return key, nil
}

// Decrypt runs both decryption stages over a full response body and returns
// the TrainsDataResponse collection.
func (d Decrypter) Decrypt(encrypted string) (*FeatureCollection, error) {
	contentHash, privateKeyHash, err := Split(strings.TrimSpace(encrypted))
	if err != nil {
		return nil, err
	}
	privateKey, err := d.PrivateKey(privateKeyHash)
	if err != nil {
		return nil, err
	}
	plain, err := cryptojs.Decrypt(contentHash, privateKey, d.Params)
	if err != nil {
		return nil, fmt.Errorf("trainsdata: decrypt content: %w", err)
	}
	return Parse([]byte(plain))
}

// Parse extracts the TrainsDataResponse from a decrypted document.
func Parse(plain []byte) (*FeatureCollection, error) {
	var doc document
	if err := json.Unmarshal(plain, &doc); err != nil {
		return nil, fmt.Errorf("trainsdata: parse document: %w", err)
	}
	if len(doc.TrainsDataResponse) == 0 || bytes.Equal(doc.TrainsDataResponse, []byte("null")) {
		return nil, ErrMissingResponse
	}

	fc := FeatureCollection{}
	if err := json.Unmarshal(doc.TrainsDataResponse, &fc); err != nil {
		return nil, fmt.Errorf("trainsdata: parse %s: %w", constant.FEED_RESPONSE_KEY, err)
	}
	fc.Raw = doc.TrainsDataResponse
	return &fc, nil
}

// Encode builds a response body the way the feed does: the document encrypted
// with privateKey, followed by "privateKey|stamp" encrypted with the public
// key.
func (d Decrypter) Encode(document []byte, privateKey, stamp string) (string, error) {
	content, err := cryptojs.Encrypt(string(document), privateKey, d.Params)
	if err != nil {
		return "", err
	}
	keyPlain := privateKey + constant.PRIVATE_KEY_DELIM + stamp
	keySegment, err := cryptojs.Encrypt(keyPlain, d.PublicKey, d.Params)
	if err != nil {
		return "", err
	}
	if len(keySegment) != constant.PRIVATE_KEY_LENGTH {
		return "", fmt.Errorf("%w: got %d", ErrKeySegmentLength, len(keySegment))
	}
	return content + keySegment, nil
}
