// Package auth serves the account pages: landing, signup, login and logout.
package auth

import (
	"context"
	"time"

	"medisecure/internal/database"
	"medisecure/internal/model"
	"medisecure/internal/session"
	"medisecure/internal/store"
)

// Sessions 登入 / 登出所需的 session 操作
type Sessions interface {
	Issue(ctx context.Context, user model.User) (string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// DonorDirectory is told when the set of donors changes.
type DonorDirectory interface {
	InvalidateDonors(ctx context.Context)
}

// 測試時可替換
var (
	hashPassword      = session.HashPassword
	comparePassword   = session.ComparePassword
	createUser        = store.CreateUser
	createDonorDetail = store.CreateDonorDetail
	getUserByEmail    = store.GetUserByEmail
	withTx            = database.WithTx
)
