package services

import (
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository container.
func NewServiceContainer(repos *portsrepo.RepositoryContainer, userCfg UserServiceConfig) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.User, userCfg),
		Account:      NewAccountService(repos.Account),
		Category:     NewCategoryService(repos.Category),
		Transaction:  NewTransactionService(repos.Transaction, repos.Account, repos.Category),
		Agenda:       NewAgendaService(repos.Transaction, repos.Account, repos.Category),
		ShoppingList: NewShoppingListService(repos.ShoppingList),
		Bill:         NewBillService(repos.Bill),
		Goal:         NewGoalService(repos.Goal),
		Inventory:    NewInventoryService(repos.Inventory),
		Reporting:    NewReportingService(repos.Reporting, repos.Account),
	}
}
