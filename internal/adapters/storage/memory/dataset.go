package memory

import (
	"context"
	"errors"
	"slices"

	"pet-grooming-manager/internal/domain/shop"
)

var _ shop.Repository = (*dataset)(nil)

// dataset implementa shop.Repository sin locking; Store lo protege y lo
// clona para transacciones.
type dataset struct {
	clients      *table[shop.Client]
	pets         *table[shop.Pet]
	services     *table[shop.GroomingService]
	products     *table[shop.Product]
	taxiDogs     *table[shop.TaxiDog]
	appointments *table[shop.Appointment]
	sales        *table[shop.Sale]
	expenses     *table[shop.Expense]
	profiles     *table[shop.UserProfile]
}

func newDataset() *dataset {
	return &dataset{
		clients: newTable(
			func(v shop.Client) string { return v.ID },
			func(v shop.Client) string { return v.UserID },
			nil),
		pets: newTable(
			func(v shop.Pet) string { return v.ID },
			func(v shop.Pet) string { return v.UserID },
			copyPet),
		services: newTable(
			func(v shop.GroomingService) string { return v.ID },
			func(v shop.GroomingService) string { return v.UserID },
			nil),
		products: newTable(
			func(v shop.Product) string { return v.ID },
			func(v shop.Product) string { return v.UserID },
			nil),
		taxiDogs: newTable(
			func(v shop.TaxiDog) string { return v.ID },
			func(v shop.TaxiDog) string { return v.UserID },
			nil),
		appointments: newTable(
			func(v shop.Appointment) string { return v.ID },
			func(v shop.Appointment) string { return v.UserID },
			func(v shop.Appointment) shop.Appointment {
				v.ServiceIDs = slices.Clone(v.ServiceIDs)
				return v
			}),
		sales: newTable(
			func(v shop.Sale) string { return v.ID },
			func(v shop.Sale) string { return v.UserID },
			func(v shop.Sale) shop.Sale {
				v.Lines = slices.Clone(v.Lines)
				return v
			}),
		expenses: newTable(
			func(v shop.Expense) string { return v.ID },
			func(v shop.Expense) string { return v.UserID },
			nil),
		profiles: newTable(
			func(v shop.UserProfile) string { return v.ID },
			func(v shop.UserProfile) string { return v.UserID },
			nil),
	}
}

func copyPet(p shop.Pet) shop.Pet {
	if p.Age != nil {
		age := *p.Age
		p.Age = &age
	}
	if p.Weight != nil {
		w := *p.Weight
		p.Weight = &w
	}
	return p
}

func (d *dataset) clone() *dataset {
	return &dataset{
		clients:      d.clients.clone(),
		pets:         d.pets.clone(),
		services:     d.services.clone(),
		products:     d.products.clone(),
		taxiDogs:     d.taxiDogs.clone(),
		appointments: d.appointments.clone(),
		sales:        d.sales.clone(),
		expenses:     d.expenses.clone(),
		profiles:     d.profiles.clone(),
	}
}

// Un dataset ya es la vista transaccional: transacciones anidadas corren directo.
func (d *dataset) WithinTx(ctx context.Context, fn func(tx shop.Repository) error) error {
	return fn(d)
}

// Clients

func (d *dataset) CreateClient(_ context.Context, c shop.Client) error { return d.clients.create(c) }
func (d *dataset) UpdateClient(ctx context.Context, c shop.Client) error {
	return d.clients.update(ctx, c)
}
func (d *dataset) DeleteClient(ctx context.Context, id string) error {
	if err := d.clients.delete(ctx, id); err != nil {
		return err
	}
	// las ventas del cliente quedan como venta avulsa (ON DELETE SET NULL)
	for i := range d.sales.rows {
		if d.sales.rows[i].ClientID == id {
			d.sales.rows[i].ClientID = ""
		}
	}
	return nil
}
func (d *dataset) GetClient(ctx context.Context, id string) (shop.Client, error) {
	return d.clients.get(ctx, id)
}
func (d *dataset) ListClients(ctx context.Context) ([]shop.Client, error) {
	return d.clients.list(ctx, nil), nil
}

// Pets

func (d *dataset) CreatePet(_ context.Context, p shop.Pet) error { return d.pets.create(p) }
func (d *dataset) UpdatePet(ctx context.Context, p shop.Pet) error {
	return d.pets.update(ctx, p)
}
func (d *dataset) DeletePet(ctx context.Context, id string) error { return d.pets.delete(ctx, id) }
func (d *dataset) GetPet(ctx context.Context, id string) (shop.Pet, error) {
	return d.pets.get(ctx, id)
}
func (d *dataset) ListPets(ctx context.Context) ([]shop.Pet, error) {
	return d.pets.list(ctx, nil), nil
}
func (d *dataset) ListPetsByOwner(ctx context.Context, clientID string) ([]shop.Pet, error) {
	return d.pets.list(ctx, func(p shop.Pet) bool { return p.OwnerID == clientID }), nil
}
func (d *dataset) HasPetsForOwner(ctx context.Context, clientID string) (bool, error) {
	return d.pets.exists(ctx, func(p shop.Pet) bool { return p.OwnerID == clientID }), nil
}

// Services

func (d *dataset) CreateService(_ context.Context, v shop.GroomingService) error {
	return d.services.create(v)
}
func (d *dataset) UpdateService(ctx context.Context, v shop.GroomingService) error {
	return d.services.update(ctx, v)
}
func (d *dataset) DeleteService(ctx context.Context, id string) error {
	return d.services.delete(ctx, id)
}
func (d *dataset) GetService(ctx context.Context, id string) (shop.GroomingService, error) {
	return d.services.get(ctx, id)
}
func (d *dataset) ListServices(ctx context.Context) ([]shop.GroomingService, error) {
	return d.services.list(ctx, nil), nil
}

// Products

func (d *dataset) CreateProduct(_ context.Context, p shop.Product) error {
	return d.products.create(p)
}
func (d *dataset) UpdateProduct(ctx context.Context, p shop.Product) error {
	return d.products.update(ctx, p)
}
func (d *dataset) DeleteProduct(ctx context.Context, id string) error {
	return d.products.delete(ctx, id)
}
func (d *dataset) GetProduct(ctx context.Context, id string) (shop.Product, error) {
	return d.products.get(ctx, id)
}
func (d *dataset) ListProducts(ctx context.Context) ([]shop.Product, error) {
	return d.products.list(ctx, nil), nil
}

// Taxi dog

func (d *dataset) CreateTaxiDog(_ context.Context, t shop.TaxiDog) error {
	return d.taxiDogs.create(t)
}
func (d *dataset) UpdateTaxiDog(ctx context.Context, t shop.TaxiDog) error {
	return d.taxiDogs.update(ctx, t)
}
func (d *dataset) DeleteTaxiDog(ctx context.Context, id string) error {
	return d.taxiDogs.delete(ctx, id)
}
func (d *dataset) GetTaxiDog(ctx context.Context, id string) (shop.TaxiDog, error) {
	return d.taxiDogs.get(ctx, id)
}
func (d *dataset) ListTaxiDogs(ctx context.Context) ([]shop.TaxiDog, error) {
	return d.taxiDogs.list(ctx, nil), nil
}

// Appointments

func (d *dataset) CreateAppointment(_ context.Context, a shop.Appointment) error {
	return d.appointments.create(a)
}
func (d *dataset) UpdateAppointment(ctx context.Context, a shop.Appointment) error {
	return d.appointments.update(ctx, a)
}
func (d *dataset) DeleteAppointment(ctx context.Context, id string) error {
	return d.appointments.delete(ctx, id)
}
func (d *dataset) GetAppointment(ctx context.Context, id string) (shop.Appointment, error) {
	return d.appointments.get(ctx, id)
}
func (d *dataset) ListAppointments(ctx context.Context) ([]shop.Appointment, error) {
	return d.appointments.list(ctx, nil), nil
}
func (d *dataset) ListAppointmentsByStatus(ctx context.Context, status shop.AppointmentStatus) ([]shop.Appointment, error) {
	return d.appointments.list(ctx, func(a shop.Appointment) bool { return a.Status == status }), nil
}
func (d *dataset) ListAppointmentsByDate(ctx context.Context, date string) ([]shop.Appointment, error) {
	return d.appointments.list(ctx, func(a shop.Appointment) bool { return a.Date == date }), nil
}
func (d *dataset) ListAppointmentsByClient(ctx context.Context, clientID string) ([]shop.Appointment, error) {
	return d.appointments.list(ctx, func(a shop.Appointment) bool { return a.ClientID == clientID }), nil
}
func (d *dataset) HasAppointmentsForClient(ctx context.Context, clientID string) (bool, error) {
	return d.appointments.exists(ctx, func(a shop.Appointment) bool { return a.ClientID == clientID }), nil
}
func (d *dataset) HasAppointmentsForPet(ctx context.Context, petID string) (bool, error) {
	return d.appointments.exists(ctx, func(a shop.Appointment) bool { return a.PetID == petID }), nil
}
func (d *dataset) HasAppointmentsForService(ctx context.Context, serviceID string) (bool, error) {
	return d.appointments.exists(ctx, func(a shop.Appointment) bool {
		return slices.Contains(a.ServiceIDs, serviceID)
	}), nil
}
func (d *dataset) HasAppointmentsForTaxiDog(ctx context.Context, taxiDogID string) (bool, error) {
	return d.appointments.exists(ctx, func(a shop.Appointment) bool { return a.TaxiDogID == taxiDogID }), nil
}

// Sales

func (d *dataset) CreateSale(_ context.Context, v shop.Sale) error { return d.sales.create(v) }
func (d *dataset) GetSale(ctx context.Context, id string) (shop.Sale, error) {
	return d.sales.get(ctx, id)
}
func (d *dataset) ListSales(ctx context.Context) ([]shop.Sale, error) {
	return d.sales.list(ctx, nil), nil
}
func (d *dataset) ListSalesByClient(ctx context.Context, clientID string) ([]shop.Sale, error) {
	return d.sales.list(ctx, func(s shop.Sale) bool { return s.ClientID == clientID }), nil
}
func (d *dataset) HasSalesForProduct(ctx context.Context, productID string) (bool, error) {
	return d.sales.exists(ctx, func(s shop.Sale) bool {
		for _, l := range s.Lines {
			if l.ProductID == productID {
				return true
			}
		}
		return false
	}), nil
}

// Expenses

func (d *dataset) CreateExpense(_ context.Context, e shop.Expense) error {
	return d.expenses.create(e)
}
func (d *dataset) UpdateExpense(ctx context.Context, e shop.Expense) error {
	return d.expenses.update(ctx, e)
}
func (d *dataset) DeleteExpense(ctx context.Context, id string) error {
	return d.expenses.delete(ctx, id)
}
func (d *dataset) GetExpense(ctx context.Context, id string) (shop.Expense, error) {
	return d.expenses.get(ctx, id)
}
func (d *dataset) ListExpenses(ctx context.Context) ([]shop.Expense, error) {
	return d.expenses.list(ctx, nil), nil
}

// Profile

// Un perfil por usuario.
func (d *dataset) GetProfile(ctx context.Context) (shop.UserProfile, error) {
	user := shop.UserFrom(ctx)
	items := d.profiles.list(ctx, func(p shop.UserProfile) bool { return p.UserID == user })
	if len(items) == 0 {
		return shop.UserProfile{}, shop.ErrNotFound
	}
	return items[0], nil
}

func (d *dataset) SaveProfile(ctx context.Context, p shop.UserProfile) error {
	err := d.profiles.update(ctx, p)
	if errors.Is(err, shop.ErrNotFound) {
		return d.profiles.create(p)
	}
	return err
}
