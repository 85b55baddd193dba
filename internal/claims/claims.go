// Package claims はセッショントークンのペイロードをデコードし、
// 正規化されたクレームセットに変換します。
//
// トークンはドット区切り3セグメント構造で、2番目のセグメントが
// base64url エンコードされたJSONオブジェクトです。署名（1・3セグメント）は
// ここでは検証しません。消費側は鍵を持たないためです。
package claims

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed はトークンは渡されたがペイロードをデコードできなかった
// 場合のエラーです。「トークンなし」（空のクレームセット）とは区別されます。
var ErrMalformed = errors.New("malformed credential")

// Claim は正規化されなかったキーと値のペアです。
type Claim struct {
	Key   string
	Value string
}

// ClaimSet は認証主体に関する正規化済みの情報です。
type ClaimSet struct {
	Name    string  // 表示名 (unique_name / name / 〜/name から)
	Subject string  // 識別子 (sub / id / 〜/nameidentifier から)
	Extra   []Claim // その他のクレーム（ペイロードの出現順）
}

// Empty はクレームをひとつも持たない（＝匿名の）クレームセットかどうかを返します。
func (cs ClaimSet) Empty() bool {
	return cs.Name == "" && cs.Subject == "" && len(cs.Extra) == 0
}

// Parse はトークンからクレームセットを取り出します。
// 空文字列やセグメントが2つ未満のトークンは空のクレームセットを返し、
// エラーにはしません。ペイロードが壊れている場合のみ ErrMalformed を返します。
func Parse(token string) (ClaimSet, error) {
	if strings.TrimSpace(token) == "" {
		return ClaimSet{}, nil
	}

	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return ClaimSet{}, nil
	}

	payload, err := decodeBase64URL(segments[1])
	if err != nil {
		return ClaimSet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	pairs, err := decodeOrderedObject(payload)
	if err != nil {
		return ClaimSet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var cs ClaimSet
	for _, kv := range pairs {
		switch {
		case kv.Key == "unique_name" || kv.Key == "name" || strings.HasSuffix(kv.Key, "/name"):
			cs.Name = kv.Value
		case kv.Key == "sub" || kv.Key == "id" || strings.HasSuffix(kv.Key, "/nameidentifier"):
			cs.Subject = kv.Value
		default:
			cs.Extra = append(cs.Extra, kv)
		}
	}
	return cs, nil
}

// decodeBase64URL はパディングを補ってbase64urlをデコードします。
// JWTのペイロードはパディングなしで流通することが多いため、
// 長さの余り 2/3 に応じて "=="/"=" を付け足します。
func decodeBase64URL(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}

// decodeOrderedObject はフラットなJSONオブジェクトをキーの出現順を
// 保ったままデコードします。map にアンマーシャルすると順序が失われるため、
// トークン単位で読み進めます。値はスカラーを文字列化します。
func decodeOrderedObject(data []byte) ([]Claim, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("payload is not a JSON object")
	}

	var pairs []Claim
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("unexpected payload key")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if _, isDelim := valTok.(json.Delim); isDelim {
			// ペイロードはフラットなオブジェクトのみ扱う
			return nil, errors.New("nested payload value")
		}
		pairs = append(pairs, Claim{Key: key, Value: stringify(valTok)})
	}

	if _, err := dec.Token(); err != nil { // 閉じブレース
		return nil, err
	}
	return pairs, nil
}

func stringify(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
