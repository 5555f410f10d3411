package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hammamsawalma/edusystem/internal/apperrors"
	"github.com/hammamsawalma/edusystem/internal/core/domain"
	portsrepo "github.com/hammamsawalma/edusystem/internal/core/ports/repositories"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

// expenseService manages general expenses. Anyone on staff can submit;
// only admins review, and only pending expenses can be edited.
type expenseService struct {
	BaseService
	expenses portsrepo.ExpenseRepository
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenses portsrepo.ExpenseRepository) portssvc.ExpenseSvcFacade {
	return &expenseService{expenses: expenses}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		SubmittedBy:  actor.ID,
		Category:     req.Category,
		Description:  req.Description,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		Date:         req.Date,
		Status:       domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	if err := s.expenses.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", expense.Category))
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && expense.SubmittedBy != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, actor domain.Actor, period domain.Period, category *string, status *domain.ExpenseStatus) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListExpensesInPeriod(ctx, period, portsrepo.ExpenseFilter{Category: category, Status: status})
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return expenses, nil
	}
	own := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.SubmittedBy == actor.ID {
			own = append(own, e)
		}
	}
	return own, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && expense.SubmittedBy != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: only pending expenses can be edited", apperrors.ErrValidation)
	}

	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.ID

	if err := s.expenses.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

func (s *expenseService) ReviewExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.ReviewExpenseRequest) (*domain.Expense, error) {
	if err := s.RequireAdmin(actor); err != nil {
		return nil, err
	}

	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense already reviewed", apperrors.ErrValidation)
	}

	expense.Status = domain.ExpenseStatus(req.Status)
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = actor.ID

	if err := s.expenses.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to review expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to review expense: %w", err)
	}

	s.LogInfo(ctx, "Expense reviewed",
		slog.String("expense_id", expenseID),
		slog.String("status", string(expense.Status)))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	expense, err := s.expenses.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && expense.SubmittedBy != actor.ID {
		return apperrors.ErrForbidden
	}
	if expense.Status == domain.ExpenseApproved && !actor.IsAdmin() {
		return fmt.Errorf("%w: approved expenses can only be deleted by an admin", apperrors.ErrValidation)
	}

	if err := s.expenses.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
