package services

import (
	"context"
	"server/internal/database"
	"server/internal/logger"

	"gorm.io/gorm"
)

// TransactionService runs a function inside a single database transaction and
// propagates the transaction handle through the context so repositories join
// it transparently.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	log := s.log.Function("Execute")

	return s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := database.ContextWithTransaction(ctx, tx)
		if err := fn(txCtx); err != nil {
			log.Er("transaction rolled back", err)
			return err
		}
		return nil
	})
}
