package repositories

// RepositoryContainer bundles every repository implementation for wiring.
type RepositoryContainer struct {
	User         UserRepository
	Account      AccountRepository
	Category     CategoryRepository
	Transaction  TransactionRepository
	ShoppingList ShoppingListRepository
	Bill         BillRepository
	Goal         GoalRepository
	Inventory    InventoryRepository
	Reporting    ReportingRepository
}
