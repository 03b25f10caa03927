package middleware_test

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func verdict(input, tape string) *domain.Verdict {
	return &domain.Verdict{Machine: "m", Input: input, Status: domain.StatusAccepted, Steps: 3, Tape: tape}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunVerdictStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := t.Context()

	require.NoError(t, secure.Save(ctx, verdict("0011", "__11__")))

	stored, err := underlying.Load(ctx, "m", "0011")
	require.NoError(t, err)
	assert.NotContains(t, stored.Tape, "11")
	assert.Contains(t, stored.Tape, "enc:")
	assert.Equal(t, domain.StatusAccepted, stored.Status)

	loaded, err := secure.Load(ctx, "m", "0011")
	require.NoError(t, err)
	assert.Equal(t, verdict("0011", "__11__"), loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := t.Context()

	secureOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, secureOld.Save(ctx, verdict("01", "old")))

	secureNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := secureNew.Load(ctx, "m", "01")
	require.NoError(t, err)
	assert.Equal(t, "old", loaded.Tape)

	require.NoError(t, secureNew.Save(ctx, verdict("01", "new")))
	_, err = secureOld.Load(ctx, "m", "01")
	assert.Error(t, err, "old key alone cannot read data written with the new key")
}

func TestEncryptionMiddleware_BoundToKey(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := t.Context()

	require.NoError(t, secure.Save(ctx, verdict("01", "secret")))
	stored, err := underlying.Load(ctx, "m", "01")
	require.NoError(t, err)

	// Replay the ciphertext under another input.
	stored.Input = "0011"
	require.NoError(t, underlying.Save(ctx, stored))

	_, err = secure.Load(ctx, "m", "0011")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_PlainEnvelope(t *testing.T) {
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(t.Context(), verdict("01", "plain")))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(t.Context(), "m", "01")
	assert.ErrorContains(t, err, "missing encrypted data envelope")
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key) + "\n")
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = middleware.ParseKey("not base64!")
	assert.Error(t, err)
	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.VerdictStore) ports.VerdictStore {
			order = append(order, name)
			return next
		}
	}

	middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	assert.Equal(t, []string{"inner", "outer"}, order)
}
