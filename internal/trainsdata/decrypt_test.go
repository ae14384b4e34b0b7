package trainsdata_test

import (
	"strings"
	"testing"

	"github.com/mirzahilmi/amtrak-trains/internal/common/constant"
	"github.com/mirzahilmi/amtrak-trains/internal/cryptojs"
	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixturePrivateKey = "c0ffee00-1234-4abc-9def-0123456789ab"
	fixtureStamp      = "1760875200000"
	fixtureDocument   = `{"TrainsDataResponse":{"features":[{"id":1}]}}`
	fixtureBlob       = "iM3VQfq62HoNsQ1fchma9x7Edaetk63FSZ9iqorrX+g/MOH4FYzG6XFrqfDV5rEj" +
		"dcw04Z2yNi3reZV8lB2EIwTo3emMkVxlQ8c1sHFLAyeaVpJwL382ye9xSSPtyDdBcnCWJ9dmWNvyJHZ2eVSkmw=="
)

func newDecrypter() trainsdata.Decrypter {
	return trainsdata.NewDecrypter(constant.CIPHER_PUBLIC_KEY, cryptojs.DefaultParams())
}

func TestSplitLengths(t *testing.T) {
	for l := constant.PRIVATE_KEY_LENGTH; l < 400; l += 7 {
		in := strings.Repeat("x", l)
		content, key, err := trainsdata.Split(in)
		require.NoError(t, err)
		assert.Len(t, content, l-constant.PRIVATE_KEY_LENGTH)
		assert.Len(t, key, constant.PRIVATE_KEY_LENGTH)
		assert.Equal(t, in, content+key)
	}
}

func TestSplitTooShort(t *testing.T) {
	for _, in := range []string{"", "abc", strings.Repeat("x", constant.PRIVATE_KEY_LENGTH-1)} {
		_, _, err := trainsdata.Split(in)
		assert.ErrorIs(t, err, trainsdata.ErrResponseTooShort)
	}
}

func TestDecryptFixture(t *testing.T) {
	fc, err := newDecrypter().Decrypt(fixtureBlob)
	require.NoError(t, err)

	first, err := fc.First()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(first))
	assert.JSONEq(t, `{"features":[{"id":1}]}`, string(fc.Raw))
}

func TestDecryptTrimsBody(t *testing.T) {
	fc, err := newDecrypter().Decrypt("\n" + fixtureBlob + "\r\n")
	require.NoError(t, err)
	assert.Len(t, fc.Features, 1)
}

func TestPrivateKey(t *testing.T) {
	_, keySegment, err := trainsdata.Split(fixtureBlob)
	require.NoError(t, err)

	key, err := newDecrypter().PrivateKey(keySegment)
	require.NoError(t, err)
	assert.Equal(t, fixturePrivateKey, key)
}

func TestEncodeMatchesFeed(t *testing.T) {
	blob, err := newDecrypter().Encode([]byte(fixtureDocument), fixturePrivateKey, fixtureStamp)
	require.NoError(t, err)
	assert.Equal(t, fixtureBlob, blob)
}

func TestDecryptErrors(t *testing.T) {
	d := newDecrypter()

	t.Run("too short", func(t *testing.T) {
		_, err := d.Decrypt(fixtureBlob[:40])
		assert.ErrorIs(t, err, trainsdata.ErrResponseTooShort)
	})

	t.Run("key segment only", func(t *testing.T) {
		_, keySegment, err := trainsdata.Split(fixtureBlob)
		require.NoError(t, err)

		_, err = d.Decrypt(keySegment)
		assert.ErrorIs(t, err, cryptojs.ErrInvalidPadding)
	})

	t.Run("wrong public key", func(t *testing.T) {
		other := trainsdata.NewDecrypter("not-the-public-key", cryptojs.DefaultParams())
		_, err := other.Decrypt(fixtureBlob)
		assert.Error(t, err)
	})

	t.Run("missing response", func(t *testing.T) {
		blob, err := d.Encode([]byte(`{"Other":{}}`), fixturePrivateKey, fixtureStamp)
		require.NoError(t, err)

		_, err = d.Decrypt(blob)
		assert.ErrorIs(t, err, trainsdata.ErrMissingResponse)
	})

	t.Run("not json", func(t *testing.T) {
		blob, err := d.Encode([]byte(`<html>`), fixturePrivateKey, fixtureStamp)
		require.NoError(t, err)

		_, err = d.Decrypt(blob)
		assert.Error(t, err)
	})
}

func TestFirstEmpty(t *testing.T) {
	fc, err := trainsdata.Parse([]byte(`{"TrainsDataResponse":{"type":"FeatureCollection","features":[]}}`))
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", fc.Type)

	_, err = fc.First()
	assert.ErrorIs(t, err, trainsdata.ErrNoFeatures)
}

func TestEncodeRejectsLongKey(t *testing.T) {
	_, err := newDecrypter().Encode([]byte(fixtureDocument), strings.Repeat("k", 70), fixtureStamp)
	assert.ErrorIs(t, err, trainsdata.ErrKeySegmentLength)
}
