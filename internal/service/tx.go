// File: backend/services/account-security-service/internal/service/tx.go
package service

import "context"

// TransactionManager runs fn inside a database transaction carried on the
// context. Repository calls made with the derived context join the
// transaction. Satisfied by postgres.TxManager.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
