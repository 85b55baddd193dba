package client

import (
	"log"
	"sync"

	"go-todo-portal/internal/claims"
)

// AuthState は導出された認証状態です。
type AuthState struct {
	Authenticated bool
	Claims        claims.ClaimSet
}

// anonymous は匿名状態です。
func anonymous() AuthState {
	return AuthState{}
}

// AuthStateProvider はトークンストアから認証状態を導出し、
// 状態の変化を購読者へ通知します。
type AuthStateProvider struct {
	store TokenStore
	api   *API

	mu        sync.Mutex
	listeners []func(AuthState)
}

// NewAuthStateProvider は新しいAuthStateProviderを作成します。
func NewAuthStateProvider(store TokenStore, api *API) *AuthStateProvider {
	return &AuthStateProvider{store: store, api: api}
}

// Subscribe は認証状態が変化するたびに呼び出されるリスナーを登録します。
func (p *AuthStateProvider) Subscribe(fn func(AuthState)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *AuthStateProvider) notify(state AuthState) {
	p.mu.Lock()
	listeners := make([]func(AuthState), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// MarkAuthenticated はトークンを保存して認証済み状態へ遷移し、
// 購読者へ通知します。
func (p *AuthStateProvider) MarkAuthenticated(token string) error {
	if err := p.store.Set(token); err != nil {
		return err
	}

	cs, err := claims.Parse(token)
	if err != nil {
		log.Printf("could not parse claims from token: %v", err)
		cs = claims.ClaimSet{}
	}

	state := AuthState{Authenticated: true, Claims: cs}
	p.notify(state)
	return nil
}

// MarkLoggedOut は保存されたトークンを削除して匿名状態へ遷移し、
// 購読者へ通知します。
func (p *AuthStateProvider) MarkLoggedOut() error {
	if err := p.store.Remove(); err != nil {
		return err
	}
	p.notify(anonymous())
	return nil
}

// CurrentState は現在の認証状態を導出します。
//
// ストアの読み出しに失敗した場合はエラーを伝播せず匿名として扱います
// （対話的でない描画コンテキストでストレージが使えないケースの互換）。
// トークンが存在すればAPIクライアントに設定し、以降のリクエストに
// Authorizationヘッダーとして付与されるようにします。
func (p *AuthStateProvider) CurrentState() AuthState {
	token, err := p.store.Get()
	if err != nil {
		// 読めないときは黙って匿名扱い
		return anonymous()
	}

	if token == "" {
		return anonymous()
	}

	if p.api != nil {
		p.api.SetToken(token)
	}

	cs, err := claims.Parse(token)
	if err != nil {
		log.Printf("stored token is malformed: %v", err)
		cs = claims.ClaimSet{}
	}
	return AuthState{Authenticated: true, Claims: cs}
}
