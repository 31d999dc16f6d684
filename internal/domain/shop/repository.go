package shop

import "context"

// Repositorios tipados por entidad. Las implementaciones devuelven ErrNotFound
// cuando el id no existe (también en Update/Delete).

type ClientRepository interface {
	CreateClient(ctx context.Context, c Client) error
	UpdateClient(ctx context.Context, c Client) error
	DeleteClient(ctx context.Context, id string) error
	GetClient(ctx context.Context, id string) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
}

type PetRepository interface {
	CreatePet(ctx context.Context, p Pet) error
	UpdatePet(ctx context.Context, p Pet) error
	DeletePet(ctx context.Context, id string) error
	GetPet(ctx context.Context, id string) (Pet, error)
	ListPets(ctx context.Context) ([]Pet, error)
	ListPetsByOwner(ctx context.Context, clientID string) ([]Pet, error)
	HasPetsForOwner(ctx context.Context, clientID string) (bool, error)
}

type ServiceRepository interface {
	CreateService(ctx context.Context, v GroomingService) error
	UpdateService(ctx context.Context, v GroomingService) error
	DeleteService(ctx context.Context, id string) error
	GetService(ctx context.Context, id string) (GroomingService, error)
	ListServices(ctx context.Context) ([]GroomingService, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type TaxiDogRepository interface {
	CreateTaxiDog(ctx context.Context, t TaxiDog) error
	UpdateTaxiDog(ctx context.Context, t TaxiDog) error
	DeleteTaxiDog(ctx context.Context, id string) error
	GetTaxiDog(ctx context.Context, id string) (TaxiDog, error)
	ListTaxiDogs(ctx context.Context) ([]TaxiDog, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a Appointment) error
	UpdateAppointment(ctx context.Context, a Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	GetAppointment(ctx context.Context, id string) (Appointment, error)
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListAppointmentsByStatus(ctx context.Context, status AppointmentStatus) ([]Appointment, error)
	ListAppointmentsByDate(ctx context.Context, date string) ([]Appointment, error)
	ListAppointmentsByClient(ctx context.Context, clientID string) ([]Appointment, error)

	HasAppointmentsForClient(ctx context.Context, clientID string) (bool, error)
	HasAppointmentsForPet(ctx context.Context, petID string) (bool, error)
	HasAppointmentsForService(ctx context.Context, serviceID string) (bool, error)
	HasAppointmentsForTaxiDog(ctx context.Context, taxiDogID string) (bool, error)
}

type SaleRepository interface {
	CreateSale(ctx context.Context, s Sale) error
	GetSale(ctx context.Context, id string) (Sale, error)
	ListSales(ctx context.Context) ([]Sale, error)
	ListSalesByClient(ctx context.Context, clientID string) ([]Sale, error)
	HasSalesForProduct(ctx context.Context, productID string) (bool, error)
}

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, e Expense) error
	UpdateExpense(ctx context.Context, e Expense) error
	DeleteExpense(ctx context.Context, id string) error
	GetExpense(ctx context.Context, id string) (Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context) (UserProfile, error)
	SaveProfile(ctx context.Context, p UserProfile) error
}

// Repository es el Entity Store completo. Hay una implementación en memoria y
// otra en Postgres; se elige por configuración al armar el router.
type Repository interface {
	ClientRepository
	PetRepository
	ServiceRepository
	ProductRepository
	TaxiDogRepository
	AppointmentRepository
	SaleRepository
	ExpenseRepository
	ProfileRepository

	// WithinTx ejecuta fn contra una vista transaccional: si fn devuelve error
	// no queda ninguna escritura aplicada.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}

type userKey struct{}

// WithUser adjunta el usuario dueño de los datos (aislamiento multi-tenant).
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFrom devuelve el usuario del contexto; "" = modo single-tenant.
func UserFrom(ctx context.Context) string {
	v, _ := ctx.Value(userKey{}).(string)
	return v
}
