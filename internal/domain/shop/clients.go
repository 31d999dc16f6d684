package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ClientInput struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	Neighborhood string
	City         string
	Notes        string
}

func (in ClientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return invalid("phone")
	}
	return nil
}

func (in ClientInput) apply(c *Client) {
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	c.Neighborhood = strings.TrimSpace(in.Neighborhood)
	c.City = strings.TrimSpace(in.City)
	c.Notes = strings.TrimSpace(in.Notes)
}

// AddClient crea el cliente con saldo pendiente en cero.
func (s *Service) AddClient(ctx context.Context, in ClientInput) (Client, error) {
	if err := in.validate(); err != nil {
		return Client{}, s.reject(ctx, "client.invalid", "Dados do cliente inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := Client{
		ID:             s.newID(),
		UserID:         UserFrom(ctx),
		PendingBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	in.apply(&c)

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return Client{}, s.storeFailure(ctx, "client.create", err)
	}
	s.success(ctx, "client.created", "Cliente adicionado com sucesso!", c.ID)
	return c, nil
}

// UpdateClient edita los datos de contacto. El saldo pendiente solo cambia por
// ventas, finalizaciones y pagos.
func (s *Service) UpdateClient(ctx context.Context, id string, in ClientInput) (Client, error) {
	if err := in.validate(); err != nil {
		return Client{}, s.reject(ctx, "client.invalid", "Dados do cliente inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Client{}, s.reject(ctx, "client.not_found", "Cliente não encontrado.", id, err)
		}
		return Client{}, s.storeFailure(ctx, "client.update", err)
	}

	in.apply(&c)
	c.UpdatedAt = s.now()

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return Client{}, s.storeFailure(ctx, "client.update", err)
	}
	s.success(ctx, "client.updated", "Cliente atualizado com sucesso!", c.ID)
	return c, nil
}

// DeleteClient falla si algún pet o agendamento referencia al cliente.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetClient(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "client.not_found", "Cliente não encontrado.", id, err)
		}
		return s.storeFailure(ctx, "client.delete", err)
	}

	hasPets, err := s.repo.HasPetsForOwner(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "client.delete", err)
	}
	hasAppts, err := s.repo.HasAppointmentsForClient(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "client.delete", err)
	}
	if hasPets || hasAppts {
		return s.reject(ctx, "client.delete_blocked",
			"Não é possível excluir o cliente pois existem pets ou agendamentos associados.", id,
			fmt.Errorf("%w: client has pets or appointments", ErrInUse))
	}

	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return s.storeFailure(ctx, "client.delete", err)
	}
	s.success(ctx, "client.deleted", "Cliente excluído com sucesso!", id)
	return nil
}

// SettlePendingPayment abate amount del saldo pendiente. Rechaza montos
// mayores al saldo actual.
func (s *Service) SettlePendingPayment(ctx context.Context, clientID string, amount decimal.Decimal, method PaymentMethod) (Client, error) {
	if amount.IsNegative() {
		return Client{}, s.reject(ctx, "client.settle_invalid", "Valor inválido.", clientID, invalid("amount"))
	}
	if !method.Valid() {
		return Client{}, s.reject(ctx, "client.settle_invalid", "Forma de pagamento inválida.", clientID, invalid("payment_method"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Client{}, s.reject(ctx, "client.not_found", "Cliente não encontrado.", clientID, err)
		}
		return Client{}, s.storeFailure(ctx, "client.settle", err)
	}

	if amount.GreaterThan(c.PendingBalance) {
		return Client{}, s.reject(ctx, "client.settle_exceeds", "Valor maior que o débito pendente.", clientID, ErrExceedsBalance)
	}

	c.PendingBalance = c.PendingBalance.Sub(amount)
	c.UpdatedAt = s.now()

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return Client{}, s.storeFailure(ctx, "client.settle", err)
	}

	s.log.Info("pending balance settled", map[string]any{
		"client_id": clientID,
		"amount":    amount.String(),
		"method":    string(method),
	})
	s.success(ctx, "client.settled", "Pagamento do saldo pendente registrado com sucesso!", clientID)
	return c, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) ListPetsByClient(ctx context.Context, clientID string) ([]Pet, error) {
	return s.repo.ListPetsByOwner(ctx, clientID)
}

func (s *Service) ListSalesByClient(ctx context.Context, clientID string) ([]Sale, error) {
	return s.repo.ListSalesByClient(ctx, clientID)
}

// addPending suma al saldo pendiente dentro de una transacción. Cliente
// inexistente es no-op.
func addPending(ctx context.Context, tx Repository, clientID string, amount decimal.Decimal, now time.Time) error {
	c, err := tx.GetClient(ctx, clientID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.PendingBalance = c.PendingBalance.Add(amount)
	c.UpdatedAt = now
	return tx.UpdateClient(ctx, c)
}
