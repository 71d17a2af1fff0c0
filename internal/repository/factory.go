package repository

import (
	"github.com/digiserve/digiserve/internal/domain/account"
	"github.com/digiserve/digiserve/internal/domain/broadcast"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	"github.com/digiserve/digiserve/internal/domain/payment"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/repository/memory"
)

func NewPaymentRepository(logger *logger.Logger) payment.Repository {
	return memory.NewInMemoryPaymentStore()
}

func NewAccountRepository(logger *logger.Logger) account.Repository {
	return memory.NewInMemoryAccountStore()
}

func NewCatalogRepository(logger *logger.Logger) catalog.Repository {
	return memory.NewInMemoryCatalogStore()
}

func NewBroadcastRepository(logger *logger.Logger) broadcast.Repository {
	return memory.NewInMemoryBroadcastStore()
}
