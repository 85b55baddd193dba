// Package session はプロセス全体のログイン状態を管理します。
//
// 「誰か」がログイン中かどうかを示す単一のフラグで、ユーザーの識別情報は
// 持ちません。同時にアクティブにできるログインはシステム全体でひとつだけです。
package session

import "sync/atomic"

// State はログインゲートです。check-then-set がひとつのアトミック操作に
// なっているため、同時ログインが両方とも通ることはありません。
type State struct {
	loggedIn atomic.Bool
}

// New は未ログイン状態のStateを作成します。
func New() *State {
	return &State{}
}

// Active は現在誰かがログイン中かどうかを返します。
func (s *State) Active() bool {
	return s.loggedIn.Load()
}

// TryBegin はゲートの取得を試みます。すでに誰かがログイン中の場合は
// falseを返し、状態は変更しません。
func (s *State) TryBegin() bool {
	return s.loggedIn.CompareAndSwap(false, true)
}

// End はゲートを解放し、解放前に誰かがログイン中だったかどうかを返します。
// 誰もログインしていない状態で呼んでもエラーにはなりません。
func (s *State) End() bool {
	return s.loggedIn.Swap(false)
}
