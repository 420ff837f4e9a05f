package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
)

// CSV column names, in export order. Import matches columns by header name,
// so column order in uploaded files is free.
const (
	colDescription       = "Description"
	colAmount            = "Amount"
	colDate              = "Date"
	colType              = "Type"
	colAccountName       = "Account Name"
	colCategoryName      = "Category Name"
	colNotes             = "Notes"
	colDueDate           = "Due Date"
	colCounterparty      = "Counterparty"
	colSettlementDate    = "Settlement Date"
	colInstallment       = "Installment"
	colInstallmentNumber = "Installment Number"
	colInstallmentCount  = "Installment Count"
	colParentTransaction = "Parent Transaction ID"
	colStatus            = "Status"
)

var csvColumns = []string{
	colDescription, colAmount, colDate, colType, colAccountName,
	colCategoryName, colNotes, colDueDate, colCounterparty,
	colSettlementDate, colInstallment, colInstallmentNumber,
	colInstallmentCount, colParentTransaction, colStatus,
}

// parseCSVAmount accepts both dot and comma decimal separators.
func parseCSVAmount(value string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	return decimal.NewFromString(normalized)
}

func parseCSVType(value string) (domain.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income":
		return domain.Income, nil
	case "expense":
		return domain.Expense, nil
	}
	return "", fmt.Errorf("unknown type %q, expected income or expense", value)
}

func parseCSVBool(value string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "FALSE":
		return false, nil
	case "TRUE":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q, expected TRUE or FALSE", value)
}

// StageCSVTransactions converts raw CSV rows into transactions without
// touching any store. Account and category names are resolved against the
// supplied name-to-ID maps; parent transaction IDs against parentsByID,
// which maps every existing same-owner transaction ID to whether it may be
// an installment parent (false when it has a parent itself). Failures are
// collected per row (header is row 1, first data row is row 2) and never
// abort the rest of the batch.
func StageCSVTransactions(
	r io.Reader,
	userID string,
	accountsByName map[string]string,
	categoriesByName map[string]string,
	parentsByID map[string]bool,
	now time.Time,
) ([]domain.Transaction, []dto.ImportRowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cannot read CSV header", apperrors.ErrValidation)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDescription, colAmount, colDate, colType, colAccountName} {
		if _, ok := colIndex[required]; !ok {
			return nil, nil, fmt.Errorf("%w: missing required column %q", apperrors.ErrValidation, required)
		}
	}

	var staged []domain.Transaction
	var rowErrors []dto.ImportRowError

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		field := func(col string) string {
			idx, ok := colIndex[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		txn, err := stageRow(field, userID, accountsByName, categoriesByName, parentsByID, now)
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		staged = append(staged, txn)
	}

	return staged, rowErrors, nil
}

func stageRow(
	field func(string) string,
	userID string,
	accountsByName map[string]string,
	categoriesByName map[string]string,
	parentsByID map[string]bool,
	now time.Time,
) (domain.Transaction, error) {
	var zero domain.Transaction

	description := field(colDescription)
	if description == "" {
		return zero, fmt.Errorf("description is required")
	}

	amount, err := parseCSVAmount(field(colAmount))
	if err != nil {
		return zero, fmt.Errorf("invalid amount %q", field(colAmount))
	}
	if amount.IsNegative() {
		return zero, fmt.Errorf("amount must not be negative")
	}

	date, err := time.Parse(dto.DateLayout, field(colDate))
	if err != nil {
		return zero, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", field(colDate))
	}

	txnType, err := parseCSVType(field(colType))
	if err != nil {
		return zero, err
	}

	accountName := field(colAccountName)
	accountID, ok := accountsByName[accountName]
	if !ok {
		return zero, fmt.Errorf("unknown account %q", accountName)
	}

	categoryID := ""
	if categoryName := field(colCategoryName); categoryName != "" {
		categoryID, ok = categoriesByName[categoryName]
		if !ok {
			return zero, fmt.Errorf("unknown category %q", categoryName)
		}
	}

	status := domain.TransactionStatus(strings.ToUpper(field(colStatus)))
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return zero, fmt.Errorf("unknown status %q", field(colStatus))
	}

	var dueDate, settlementDate *time.Time
	if v := field(colDueDate); v != "" {
		t, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return zero, fmt.Errorf("invalid due date %q", v)
		}
		dueDate = &t
	}
	if v := field(colSettlementDate); v != "" {
		t, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return zero, fmt.Errorf("invalid settlement date %q", v)
		}
		settlementDate = &t
	}

	isInstallment, err := parseCSVBool(field(colInstallment))
	if err != nil {
		return zero, err
	}
	installmentNumber := 0
	if v := field(colInstallmentNumber); v != "" {
		installmentNumber, err = strconv.Atoi(v)
		if err != nil {
			return zero, fmt.Errorf("invalid installment number %q", v)
		}
	}
	installmentCount := 0
	if v := field(colInstallmentCount); v != "" {
		installmentCount, err = strconv.Atoi(v)
		if err != nil {
			return zero, fmt.Errorf("invalid installment count %q", v)
		}
	}

	parentID := field(colParentTransaction)
	if parentID != "" {
		eligible, ok := parentsByID[parentID]
		if !ok {
			return zero, fmt.Errorf("unknown parent transaction %q", parentID)
		}
		if !eligible {
			return zero, fmt.Errorf("parent transaction %q is itself an installment child", parentID)
		}
	}

	return domain.Transaction{
		TransactionID:       uuid.NewString(),
		UserID:              userID,
		AccountID:           accountID,
		CategoryID:          categoryID,
		Description:         description,
		Amount:              amount,
		Type:                txnType,
		Status:              status,
		Date:                date,
		DueDate:             dueDate,
		SettlementDate:      settlementDate,
		Counterparty:        field(colCounterparty),
		Notes:               field(colNotes),
		IsInstallment:       isInstallment,
		InstallmentNumber:   installmentNumber,
		InstallmentCount:    installmentCount,
		ParentTransactionID: parentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// ImportCSV stages every row of r against the user's account and category
// names, then commits the whole batch plus its net balance deltas in one
// database transaction. If any row failed staging, nothing is written and
// the failures are reported per row.
func (s *transactionService) ImportCSV(ctx context.Context, userID string, r io.Reader) (*dto.ImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accountsByName := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		accountsByName[acc.Name] = acc.AccountID
	}

	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categoriesByName := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoriesByName[cat.Name] = cat.CategoryID
	}

	// Parent references get the same checks as the create path: the parent
	// must exist, belong to this user, and not be a child itself.
	existing, err := s.txnRepo.ListTransactionsByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	parentsByID := make(map[string]bool, len(existing))
	for _, t := range existing {
		parentsByID[t.TransactionID] = t.ParentTransactionID == ""
	}

	staged, rowErrors, err := StageCSVTransactions(r, userID, accountsByName, categoriesByName, parentsByID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Imported: len(staged), Errors: rowErrors}
	if len(rowErrors) > 0 {
		logger.Warn("CSV import rejected, rolling back batch", slog.Int("staged", len(staged)), slog.Int("errors", len(rowErrors)))
		return result, nil
	}
	if len(staged) == 0 {
		return result, nil
	}

	changes := make(map[string]decimal.Decimal)
	for _, txn := range staged {
		if s.policy.Counts(txn) {
			addDelta(changes, txn.AccountID, signedEffect(txn))
		}
	}

	if err := s.txnRepo.SaveTransactions(ctx, staged, changes); err != nil {
		logger.Error("Failed to commit imported transactions", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("CSV import committed", slog.Int("imported", len(staged)))
	return result, nil
}

// ExportCSV serializes all of the user's transactions through the same
// column layout ImportCSV accepts.
func (s *transactionService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID, false)
	if err != nil {
		return err
	}

	accountIDs := make([]string, 0, len(txns))
	seen := make(map[string]bool)
	for _, txn := range txns {
		if !seen[txn.AccountID] {
			seen[txn.AccountID] = true
			accountIDs = append(accountIDs, txn.AccountID)
		}
	}
	accountNames, err := s.AccountNames(ctx, userID, accountIDs)
	if err != nil {
		return err
	}

	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.CategoryID] = cat.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}

	formatOptional := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(dto.DateLayout)
	}
	formatBool := func(b bool) string {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	formatInt := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}

	for _, txn := range txns {
		record := []string{
			txn.Description,
			txn.Amount.StringFixed(2),
			txn.Date.Format(dto.DateLayout),
			strings.ToLower(string(txn.Type)),
			accountNames[txn.AccountID],
			categoryNames[txn.CategoryID],
			txn.Notes,
			formatOptional(txn.DueDate),
			txn.Counterparty,
			formatOptional(txn.SettlementDate),
			formatBool(txn.IsInstallment),
			formatInt(txn.InstallmentNumber),
			formatInt(txn.InstallmentCount),
			txn.ParentTransactionID,
			string(txn.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
