package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        string
	Notes       string
}

func (in ExpenseInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description")
	}
	if !in.Amount.IsPositive() {
		return invalid("amount")
	}
	if strings.TrimSpace(in.Category) == "" {
		return invalid("category")
	}
	if !validDate(in.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	return nil
}

func (in ExpenseInput) apply(e *Expense) {
	e.Description = strings.TrimSpace(in.Description)
	e.Amount = in.Amount
	e.Category = strings.TrimSpace(in.Category)
	e.Date = strings.TrimSpace(in.Date)
	e.Notes = strings.TrimSpace(in.Notes)
}

func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (Expense, error) {
	if err := in.validate(); err != nil {
		return Expense{}, s.reject(ctx, "expense.invalid", "Dados da despesa inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := Expense{
		ID:        s.newID(),
		UserID:    UserFrom(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(&e)

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return Expense{}, s.storeFailure(ctx, "expense.create", err)
	}
	s.success(ctx, "expense.created", "Despesa adicionada com sucesso!", e.ID)
	return e, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (Expense, error) {
	if err := in.validate(); err != nil {
		return Expense{}, s.reject(ctx, "expense.invalid", "Dados da despesa inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Expense{}, s.reject(ctx, "expense.not_found", "Despesa não encontrada.", id, err)
		}
		return Expense{}, s.storeFailure(ctx, "expense.update", err)
	}

	in.apply(&e)
	e.UpdatedAt = s.now()

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return Expense{}, s.storeFailure(ctx, "expense.update", err)
	}
	s.success(ctx, "expense.updated", "Despesa atualizada com sucesso!", id)
	return e, nil
}

// DeleteExpense no tiene referencias que chequear.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "expense.not_found", "Despesa não encontrada.", id, err)
		}
		return s.storeFailure(ctx, "expense.delete", err)
	}
	s.success(ctx, "expense.deleted", "Despesa excluída com sucesso!", id)
	return nil
}

func (s *Service) GetExpense(ctx context.Context, id string) (Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context) ([]Expense, error) {
	return s.repo.ListExpenses(ctx)
}
