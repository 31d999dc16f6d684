package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// -------------------------
// Services
// -------------------------

type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name")
	}
	if !in.Price.IsPositive() {
		return invalid("price")
	}
	if in.Duration <= 0 {
		return invalid("duration")
	}
	return nil
}

func (s *Service) AddService(ctx context.Context, in ServiceInput) (GroomingService, error) {
	if err := in.validate(); err != nil {
		return GroomingService{}, s.reject(ctx, "service.invalid", "Dados do serviço inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	svc := GroomingService{
		ID:          s.newID(),
		UserID:      UserFrom(ctx),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Duration:    in.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return GroomingService{}, s.storeFailure(ctx, "service.create", err)
	}
	s.success(ctx, "service.created", "Serviço adicionado com sucesso!", svc.ID)
	return svc, nil
}

// UpdateService no altera el precio de agendamentos ya creados (precio congelado).
func (s *Service) UpdateService(ctx context.Context, id string, in ServiceInput) (GroomingService, error) {
	if err := in.validate(); err != nil {
		return GroomingService{}, s.reject(ctx, "service.invalid", "Dados do serviço inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GroomingService{}, s.reject(ctx, "service.not_found", "Serviço não encontrado.", id, err)
		}
		return GroomingService{}, s.storeFailure(ctx, "service.update", err)
	}

	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = strings.TrimSpace(in.Description)
	svc.Price = in.Price
	svc.Duration = in.Duration
	svc.UpdatedAt = s.now()

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return GroomingService{}, s.storeFailure(ctx, "service.update", err)
	}
	s.success(ctx, "service.updated", "Serviço atualizado com sucesso!", id)
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetService(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "service.not_found", "Serviço não encontrado.", id, err)
		}
		return s.storeFailure(ctx, "service.delete", err)
	}

	inUse, err := s.repo.HasAppointmentsForService(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "service.delete", err)
	}
	if inUse {
		return s.reject(ctx, "service.delete_blocked",
			"Não é possível excluir o serviço pois está sendo usado em agendamentos.", id,
			fmt.Errorf("%w: service used by appointments", ErrInUse))
	}

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return s.storeFailure(ctx, "service.delete", err)
	}
	s.success(ctx, "service.deleted", "Serviço excluído com sucesso!", id)
	return nil
}

func (s *Service) GetService(ctx context.Context, id string) (GroomingService, error) {
	return s.repo.GetService(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]GroomingService, error) {
	return s.repo.ListServices(ctx)
}

// -------------------------
// Products
// -------------------------

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name")
	}
	if !in.Price.IsPositive() {
		return invalid("price")
	}
	if in.Stock < 0 {
		return invalid("stock")
	}
	return nil
}

func (s *Service) AddProduct(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.validate(); err != nil {
		return Product{}, s.reject(ctx, "product.invalid", "Dados do produto inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := Product{
		ID:          s.newID(),
		UserID:      UserFrom(ctx),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return Product{}, s.storeFailure(ctx, "product.create", err)
	}
	s.success(ctx, "product.created", "Produto adicionado com sucesso!", p.ID)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := in.validate(); err != nil {
		return Product{}, s.reject(ctx, "product.invalid", "Dados do produto inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, s.reject(ctx, "product.not_found", "Produto não encontrado.", id, err)
		}
		return Product{}, s.storeFailure(ctx, "product.update", err)
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Stock = in.Stock
	p.UpdatedAt = s.now()

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return Product{}, s.storeFailure(ctx, "product.update", err)
	}
	s.success(ctx, "product.updated", "Produto atualizado com sucesso!", id)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "product.not_found", "Produto não encontrado.", id, err)
		}
		return s.storeFailure(ctx, "product.delete", err)
	}

	inUse, err := s.repo.HasSalesForProduct(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "product.delete", err)
	}
	if inUse {
		return s.reject(ctx, "product.delete_blocked",
			"Não é possível excluir o produto pois está sendo usado em vendas.", id,
			fmt.Errorf("%w: product used by sales", ErrInUse))
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return s.storeFailure(ctx, "product.delete", err)
	}
	s.success(ctx, "product.deleted", "Produto excluído com sucesso!", id)
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.ListProducts(ctx)
}

// -------------------------
// Taxi dog
// -------------------------

type TaxiDogInput struct {
	Neighborhood string
	Price        decimal.Decimal
	Notes        string
}

func (in TaxiDogInput) validate() error {
	if strings.TrimSpace(in.Neighborhood) == "" {
		return invalid("neighborhood")
	}
	if !in.Price.IsPositive() {
		return invalid("price")
	}
	return nil
}

func (s *Service) AddTaxiDog(ctx context.Context, in TaxiDogInput) (TaxiDog, error) {
	if err := in.validate(); err != nil {
		return TaxiDog{}, s.reject(ctx, "taxi_dog.invalid", "Dados do Taxi Dog inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := TaxiDog{
		ID:           s.newID(),
		UserID:       UserFrom(ctx),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Price:        in.Price,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateTaxiDog(ctx, t); err != nil {
		return TaxiDog{}, s.storeFailure(ctx, "taxi_dog.create", err)
	}
	s.success(ctx, "taxi_dog.created", "Serviço de Taxi Dog adicionado com sucesso!", t.ID)
	return t, nil
}

func (s *Service) UpdateTaxiDog(ctx context.Context, id string, in TaxiDogInput) (TaxiDog, error) {
	if err := in.validate(); err != nil {
		return TaxiDog{}, s.reject(ctx, "taxi_dog.invalid", "Dados do Taxi Dog inválidos.", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.repo.GetTaxiDog(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TaxiDog{}, s.reject(ctx, "taxi_dog.not_found", "Taxi Dog não encontrado.", id, err)
		}
		return TaxiDog{}, s.storeFailure(ctx, "taxi_dog.update", err)
	}

	t.Neighborhood = strings.TrimSpace(in.Neighborhood)
	t.Price = in.Price
	t.Notes = strings.TrimSpace(in.Notes)
	t.UpdatedAt = s.now()

	if err := s.repo.UpdateTaxiDog(ctx, t); err != nil {
		return TaxiDog{}, s.storeFailure(ctx, "taxi_dog.update", err)
	}
	s.success(ctx, "taxi_dog.updated", "Serviço de Taxi Dog atualizado com sucesso!", id)
	return t, nil
}

func (s *Service) DeleteTaxiDog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetTaxiDog(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.reject(ctx, "taxi_dog.not_found", "Taxi Dog não encontrado.", id, err)
		}
		return s.storeFailure(ctx, "taxi_dog.delete", err)
	}

	inUse, err := s.repo.HasAppointmentsForTaxiDog(ctx, id)
	if err != nil {
		return s.storeFailure(ctx, "taxi_dog.delete", err)
	}
	if inUse {
		return s.reject(ctx, "taxi_dog.delete_blocked",
			"Não é possível excluir o serviço de Taxi Dog pois está sendo usado em agendamentos.", id,
			fmt.Errorf("%w: taxi dog used by appointments", ErrInUse))
	}

	if err := s.repo.DeleteTaxiDog(ctx, id); err != nil {
		return s.storeFailure(ctx, "taxi_dog.delete", err)
	}
	s.success(ctx, "taxi_dog.deleted", "Serviço de Taxi Dog excluído com sucesso!", id)
	return nil
}

func (s *Service) GetTaxiDog(ctx context.Context, id string) (TaxiDog, error) {
	return s.repo.GetTaxiDog(ctx, id)
}

func (s *Service) ListTaxiDogs(ctx context.Context) ([]TaxiDog, error) {
	return s.repo.ListTaxiDogs(ctx)
}
