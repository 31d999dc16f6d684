package memory

import (
	"context"
	"sync"

	"pet-grooming-manager/internal/domain/shop"
)

// Store es el Entity Store en memoria (variante "local"). Lecturas con RLock,
// escrituras con Lock; WithinTx trabaja sobre un clon y lo publica solo si fn
// termina sin error.
type Store struct {
	mu sync.RWMutex
	ds *dataset
}

var _ shop.Repository = (*Store)(nil)

func NewStore() *Store {
	return &Store{ds: newDataset()}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx shop.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.ds.clone()
	if err := fn(draft); err != nil {
		return err
	}
	s.ds = draft
	return nil
}

func (s *Store) CreateClient(ctx context.Context, c shop.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateClient(ctx, c)
}

func (s *Store) UpdateClient(ctx context.Context, c shop.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateClient(ctx, c)
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteClient(ctx, id)
}

func (s *Store) GetClient(ctx context.Context, id string) (shop.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetClient(ctx, id)
}

func (s *Store) ListClients(ctx context.Context) ([]shop.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListClients(ctx)
}

func (s *Store) CreatePet(ctx context.Context, p shop.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreatePet(ctx, p)
}

func (s *Store) UpdatePet(ctx context.Context, p shop.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdatePet(ctx, p)
}

func (s *Store) DeletePet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeletePet(ctx, id)
}

func (s *Store) GetPet(ctx context.Context, id string) (shop.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetPet(ctx, id)
}

func (s *Store) ListPets(ctx context.Context) ([]shop.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListPets(ctx)
}

func (s *Store) ListPetsByOwner(ctx context.Context, clientID string) ([]shop.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListPetsByOwner(ctx, clientID)
}

func (s *Store) HasPetsForOwner(ctx context.Context, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasPetsForOwner(ctx, clientID)
}

func (s *Store) CreateService(ctx context.Context, v shop.GroomingService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateService(ctx, v)
}

func (s *Store) UpdateService(ctx context.Context, v shop.GroomingService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateService(ctx, v)
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteService(ctx, id)
}

func (s *Store) GetService(ctx context.Context, id string) (shop.GroomingService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetService(ctx, id)
}

func (s *Store) ListServices(ctx context.Context) ([]shop.GroomingService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListServices(ctx)
}

func (s *Store) CreateProduct(ctx context.Context, p shop.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateProduct(ctx, p)
}

func (s *Store) UpdateProduct(ctx context.Context, p shop.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateProduct(ctx, p)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteProduct(ctx, id)
}

func (s *Store) GetProduct(ctx context.Context, id string) (shop.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetProduct(ctx, id)
}

func (s *Store) ListProducts(ctx context.Context) ([]shop.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListProducts(ctx)
}

func (s *Store) CreateTaxiDog(ctx context.Context, t shop.TaxiDog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateTaxiDog(ctx, t)
}

func (s *Store) UpdateTaxiDog(ctx context.Context, t shop.TaxiDog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateTaxiDog(ctx, t)
}

func (s *Store) DeleteTaxiDog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteTaxiDog(ctx, id)
}

func (s *Store) GetTaxiDog(ctx context.Context, id string) (shop.TaxiDog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetTaxiDog(ctx, id)
}

func (s *Store) ListTaxiDogs(ctx context.Context) ([]shop.TaxiDog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListTaxiDogs(ctx)
}

func (s *Store) CreateAppointment(ctx context.Context, a shop.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateAppointment(ctx, a)
}

func (s *Store) UpdateAppointment(ctx context.Context, a shop.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateAppointment(ctx, a)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteAppointment(ctx, id)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (shop.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetAppointment(ctx, id)
}

func (s *Store) ListAppointments(ctx context.Context) ([]shop.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListAppointments(ctx)
}

func (s *Store) ListAppointmentsByStatus(ctx context.Context, status shop.AppointmentStatus) ([]shop.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListAppointmentsByStatus(ctx, status)
}

func (s *Store) ListAppointmentsByDate(ctx context.Context, date string) ([]shop.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListAppointmentsByDate(ctx, date)
}

func (s *Store) ListAppointmentsByClient(ctx context.Context, clientID string) ([]shop.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListAppointmentsByClient(ctx, clientID)
}

func (s *Store) HasAppointmentsForClient(ctx context.Context, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasAppointmentsForClient(ctx, clientID)
}

func (s *Store) HasAppointmentsForPet(ctx context.Context, petID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasAppointmentsForPet(ctx, petID)
}

func (s *Store) HasAppointmentsForService(ctx context.Context, serviceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasAppointmentsForService(ctx, serviceID)
}

func (s *Store) HasAppointmentsForTaxiDog(ctx context.Context, taxiDogID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasAppointmentsForTaxiDog(ctx, taxiDogID)
}

func (s *Store) CreateSale(ctx context.Context, v shop.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateSale(ctx, v)
}

func (s *Store) GetSale(ctx context.Context, id string) (shop.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetSale(ctx, id)
}

func (s *Store) ListSales(ctx context.Context) ([]shop.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListSales(ctx)
}

func (s *Store) ListSalesByClient(ctx context.Context, clientID string) ([]shop.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListSalesByClient(ctx, clientID)
}

func (s *Store) HasSalesForProduct(ctx context.Context, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.HasSalesForProduct(ctx, productID)
}

func (s *Store) CreateExpense(ctx context.Context, e shop.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.CreateExpense(ctx, e)
}

func (s *Store) UpdateExpense(ctx context.Context, e shop.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.UpdateExpense(ctx, e)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.DeleteExpense(ctx, id)
}

func (s *Store) GetExpense(ctx context.Context, id string) (shop.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetExpense(ctx, id)
}

func (s *Store) ListExpenses(ctx context.Context) ([]shop.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.ListExpenses(ctx)
}

func (s *Store) GetProfile(ctx context.Context) (shop.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds.GetProfile(ctx)
}

func (s *Store) SaveProfile(ctx context.Context, p shop.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.SaveProfile(ctx, p)
}
