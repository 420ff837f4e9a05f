package pgsql

import (
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer wires every Postgres repository onto the shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		User:         NewPgxUserRepository(pool),
		Account:      NewPgxAccountRepository(pool),
		Category:     NewPgxCategoryRepository(pool),
		Transaction:  NewPgxTransactionRepository(pool),
		ShoppingList: NewPgxShoppingListRepository(pool),
		Bill:         NewPgxBillRepository(pool),
		Goal:         NewPgxGoalRepository(pool),
		Inventory:    NewPgxInventoryRepository(pool),
		Reporting:    NewPgxReportingRepository(pool),
	}
}
