package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PetInput struct {
	OwnerID string
	Name    string
	Species string
	Breed   string
	Age     *int
	Weight  *decimal.Decimal
	Notes   string
}

func (in PetInput) validate() error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return invalid("owner_id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name")
	}
	if strings.TrimSpace(in.Species) == "" {
		return invalid("species")
	}
	if in.Age != nil && *in.Age < 0 {
		return invalid("age")
	}
	if in.Weight != nil && in.Weight.IsNegative() {
		return invalid("weight")
	}
	return nil
}

func (in PetInput) apply(p *Pet) {
	p.OwnerID = strings.TrimSpace(in.OwnerID)
	p.Name = strings.TrimSpace(in.Name)
	p.Species = strings.TrimSpace(in.Species)
	p.Breed = strings.TrimSpace(in.Breed)
	p.Age = in.Age
	p.Weight = in.Weight
	p.Notes = strings.TrimSpace(in.Notes)
}

func (s *Service) AddPet(ctx context.Context, in PetInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, s.reject(ctx, "pet.invalid", "Dados do pet inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClient(ctx, in.OwnerID); err != nil {
		return Pet{}, s.reject(ctx, "pet.owner_not_found", "Tutor não encontrado.", "", err)
	}

	now := s.now()
	p := Pet{
		ID:        s.newID(),
		UserID:    UserFrom(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(&p)

	if err := s.repo.CreatePet(ctx, p); err != nil {
		return Pet{}, s.storeFailure(ctx, "pet.create", err)
	}
	s.success(ctx, "pet.created", "Pet adicionado com sucesso!", p.ID)
	return p, nil
}

func (s *Service) UpdatePet(ctx context.Context, id string, in PetInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, s.reject(ctx, "pet.invalid", "Dados do pet inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetPet(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, s.reject(ctx, "pet.not_found", "Pet não encontrado.", id, err)
		}
		return Pet{}, s.storeFailure(ctx, "pet.update", err)
	}
	if in.OwnerID != p.OwnerID {
		if err := s.ensureClient(ctx, in.OwnerID); err != nil {
			return Pet{}, s.reject(ctx, "pet.owner_not_found", "Tutor não encontrado.", id, err)
		}
	}

	in.apply(&p)
	p.UpdatedAt = s.now()

	if err := s.repo.UpdatePet(ctx, p); err != nil {
		return Pet{}, s.storeFailure(ctx, "pet.update", err)
	}
	s.success(ctx, "pet.updated", "Pet atualizado com sucesso!", p.ID)
	return p, nil
}

// DeletePet falla si hay agendamentos del pet.
func (s *Service) DeletePet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetPet(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "pet.not_found", "Pet não encontrado.", id, err)
		}
		return s.storeFailure(ctx, "pet.delete", err)
	}

	inUse, err := s.repo.HasAppointmentsForPet(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "pet.delete", err)
	}
	if inUse {
		return s.reject(ctx, "pet.delete_blocked",
			"Não é possível excluir o pet pois existem agendamentos associados.", id,
			fmt.Errorf("%w: pet has appointments", ErrInUse))
	}

	if err := s.repo.DeletePet(ctx, id); err != nil {
		return s.storeFailure(ctx, "pet.delete", err)
	}
	s.success(ctx, "pet.deleted", "Pet excluído com sucesso!", id)
	return nil
}

func (s *Service) GetPet(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetPet(ctx, id)
}

func (s *Service) ListPets(ctx context.Context) ([]Pet, error) {
	return s.repo.ListPets(ctx)
}

func (s *Service) ensureClient(ctx context.Context, id string) error {
	_, err := s.repo.GetClient(ctx, strings.TrimSpace(id))
	return err
}
