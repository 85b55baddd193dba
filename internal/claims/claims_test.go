package claims_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-portal/internal/claims"
)

func TestParse_SubAndName(t *testing.T) {
	// ペイロード: {"sub":"123","name":"Alice"}
	token := "x.eyJzdWIiOiIxMjMiLCJuYW1lIjoiQWxpY2UifQ.y"

	cs, err := claims.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "123", cs.Subject, "Expected sub claim to map to Subject")
	assert.Equal(t, "Alice", cs.Name, "Expected name claim to map to Name")
	assert.Empty(t, cs.Extra)
}

func TestParse_EmptyToken(t *testing.T) {
	cs, err := claims.Parse("")
	require.NoError(t, err, "Empty token must not be an error")
	assert.True(t, cs.Empty())

	cs, err = claims.Parse("   ")
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}

func TestParse_NoDots(t *testing.T) {
	cs, err := claims.Parse("notatoken")
	require.NoError(t, err, "Token without dots must yield an empty set, not an error")
	assert.True(t, cs.Empty())
}

func TestParse_MalformedPayload(t *testing.T) {
	// 2番目のセグメントがbase64として不正
	_, err := claims.Parse("x.!!!not-base64!!!.y")
	require.ErrorIs(t, err, claims.ErrMalformed)

	// base64としては正しいがJSONではない
	payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	_, err = claims.Parse("x." + payload + ".y")
	require.ErrorIs(t, err, claims.ErrMalformed)
}

func TestParse_PaddingTolerance(t *testing.T) {
	// パディング無しで長さの余りが2と3になるペイロードの両方を確認する
	for _, payload := range []string{`{"sub":"1"}`, `{"sub":"42"}`, `{"name":"Bob"}`} {
		encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
		cs, err := claims.Parse("h." + encoded + ".s")
		require.NoError(t, err, "payload %q should decode", payload)
		assert.False(t, cs.Empty())
	}
}

func TestParse_SuffixRules(t *testing.T) {
	// ASP.NETスタイルのURI形式のクレームキーもサフィックスで正規化される
	payload := `{"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name":"Carol",` +
		`"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier":"7"}`
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))

	cs, err := claims.Parse("h." + encoded + ".s")
	require.NoError(t, err)
	assert.Equal(t, "Carol", cs.Name)
	assert.Equal(t, "7", cs.Subject)
}

func TestParse_UniqueNameAndID(t *testing.T) {
	payload := `{"unique_name":"dave","id":99}`
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))

	cs, err := claims.Parse("h." + encoded + ".s")
	require.NoError(t, err)
	assert.Equal(t, "dave", cs.Name)
	assert.Equal(t, "99", cs.Subject, "Numeric id claim should be stringified")
}

func TestParse_ExtraClaimsKeepOrder(t *testing.T) {
	payload := `{"role":"admin","iat":1700000000,"sub":"5","scope":"todos","flag":true}`
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))

	cs, err := claims.Parse("h." + encoded + ".s")
	require.NoError(t, err)
	assert.Equal(t, "5", cs.Subject)

	// 正規化されないクレームはペイロードの出現順で保持される
	require.Len(t, cs.Extra, 4)
	assert.Equal(t, claims.Claim{Key: "role", Value: "admin"}, cs.Extra[0])
	assert.Equal(t, claims.Claim{Key: "iat", Value: "1700000000"}, cs.Extra[1])
	assert.Equal(t, claims.Claim{Key: "scope", Value: "todos"}, cs.Extra[2])
	assert.Equal(t, claims.Claim{Key: "flag", Value: "true"}, cs.Extra[3])
}
