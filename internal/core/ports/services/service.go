package services

// ServiceContainer bundles every service implementation for route wiring.
// Transaction posts balance effects immediately; Agenda gates them on
// settlement status. Both satisfy the same interface.
type ServiceContainer struct {
	User         UserSvc
	Account      AccountSvc
	Category     CategorySvc
	Transaction  TransactionSvc
	Agenda       TransactionSvc
	ShoppingList ShoppingListSvc
	Bill         BillSvc
	Goal         GoalSvc
	Inventory    InventorySvc
	Reporting    ReportingSvc
}
