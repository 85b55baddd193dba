// Package client はAPIを利用する側の認証アダプターを提供します。
//
// サーバーが発行したトークンをローカルに保存し、そこから認証状態
// （匿名か認証済みか）とクレームを導出して、状態の変化を購読者へ
// 通知します。元のシステムではブラウザのlocalStorageが担っていた
// 役割をファイルベースのストアで置き換えています。
package client

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore はトークンをひとつだけ保存するストアです。
type TokenStore interface {
	// Get は保存されたトークンを返します。未保存の場合は空文字列を返します。
	Get() (string, error)
	// Set はトークンを保存します。
	Set(token string) error
	// Remove は保存されたトークンを削除します。未保存でもエラーにしません。
	Remove() error
}

const tokenFileName = "auth_token"

// FileTokenStore はトークンを単一ファイルに保存するTokenStoreです。
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore は指定ディレクトリ配下にトークンを保存するストアを作成します。
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{dir: dir}
}

func (s *FileTokenStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Get は保存されたトークンを読み出します。ファイルが無い場合は空文字列です。
func (s *FileTokenStore) Get() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Set はトークンをファイルに書き込みます。
func (s *FileTokenStore) Set(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0600)
}

// Remove はトークンファイルを削除します。
func (s *FileTokenStore) Remove() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
