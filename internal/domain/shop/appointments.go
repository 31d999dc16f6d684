package shop

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type AppointmentInput struct {
	ClientID   string
	PetID      string
	Date       string
	Time       string
	ServiceIDs []string
	TaxiDogID  string
	Notes      string
}

func (in AppointmentInput) validate() error {
	if strings.TrimSpace(in.ClientID) == "" {
		return invalid("client_id")
	}
	if strings.TrimSpace(in.PetID) == "" {
		return invalid("pet_id")
	}
	if !validDate(in.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	if !validTime(in.Time) {
		return invalid("time must be HH:MM")
	}
	if len(in.ServiceIDs) == 0 {
		return invalid("services")
	}
	return nil
}

// AddAppointment crea el agendamento en estado agendado. El precio es la suma
// de los servicios más el taxi dog y queda congelado.
func (s *Service) AddAppointment(ctx context.Context, in AppointmentInput) (Appointment, error) {
	if err := in.validate(); err != nil {
		return Appointment{}, s.reject(ctx, "appointment.invalid", "Dados do agendamento inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetClient(ctx, in.ClientID); err != nil {
		return Appointment{}, s.lookupRejection(ctx, "appointment.create", "Cliente não encontrado.", err)
	}
	pet, err := s.repo.GetPet(ctx, in.PetID)
	if err != nil {
		return Appointment{}, s.lookupRejection(ctx, "appointment.create", "Pet não encontrado.", err)
	}
	if pet.OwnerID != strings.TrimSpace(in.ClientID) {
		return Appointment{}, s.reject(ctx, "appointment.create_rejected", "O pet não pertence a este cliente.", "", invalid("pet_id does not belong to client"))
	}

	price, serviceIDs, err := s.quote(ctx, in.ServiceIDs, in.TaxiDogID)
	if err != nil {
		return Appointment{}, s.lookupRejection(ctx, "appointment.create", "Serviço ou Taxi Dog não encontrado.", err)
	}

	now := s.now()
	a := Appointment{
		ID:         s.newID(),
		UserID:     UserFrom(ctx),
		ClientID:   strings.TrimSpace(in.ClientID),
		PetID:      strings.TrimSpace(in.PetID),
		Date:       strings.TrimSpace(in.Date),
		Time:       strings.TrimSpace(in.Time),
		ServiceIDs: serviceIDs,
		TaxiDogID:  strings.TrimSpace(in.TaxiDogID),
		Status:     StatusScheduled,
		Price:      price,
		Paid:       false,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return Appointment{}, s.storeFailure(ctx, "appointment.create", err)
	}
	s.success(ctx, "appointment.created", "Agendamento criado com sucesso!", a.ID)
	return a, nil
}

// quote suma precios de servicios + taxi dog.
func (s *Service) quote(ctx context.Context, serviceIDs []string, taxiDogID string) (decimal.Decimal, []string, error) {
	total := decimal.Zero
	ids := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		svc, err := s.repo.GetService(ctx, id)
		if err != nil {
			return decimal.Zero, nil, err
		}
		total = total.Add(svc.Price)
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return decimal.Zero, nil, invalid("services")
	}

	if id := strings.TrimSpace(taxiDogID); id != "" {
		t, err := s.repo.GetTaxiDog(ctx, id)
		if err != nil {
			return decimal.Zero, nil, err
		}
		total = total.Add(t.Price)
	}
	return total, ids, nil
}

// lookupRejection traduce fallas de búsqueda previas a la escritura.
func (s *Service) lookupRejection(ctx context.Context, op, msg string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
		return s.reject(ctx, op+"_rejected", msg, "", err)
	}
	return s.storeFailure(ctx, op, err)
}

type AppointmentUpdate struct {
	Date  string
	Time  string
	Notes string
}

// UpdateAppointment reprograma fecha/hora/notas. Estado, pago y precio no se
// tocan por esta vía.
func (s *Service) UpdateAppointment(ctx context.Context, id string, in AppointmentUpdate) (Appointment, error) {
	if !validDate(in.Date) || !validTime(in.Time) {
		return Appointment{}, s.reject(ctx, "appointment.invalid", "Dados do agendamento inválidos.", id, invalid("date/time"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.Status == StatusFinalized {
		return Appointment{}, s.reject(ctx, "appointment.update_blocked",
			"Não é possível alterar um agendamento finalizado.", id, ErrFinalized)
	}

	a.Date = strings.TrimSpace(in.Date)
	a.Time = strings.TrimSpace(in.Time)
	a.Notes = strings.TrimSpace(in.Notes)
	a.UpdatedAt = s.now()

	if err := s.repo.UpdateAppointment(ctx, a); err != nil {
		return Appointment{}, s.storeFailure(ctx, "appointment.update", err)
	}
	s.success(ctx, "appointment.updated", "Agendamento atualizado com sucesso!", id)
	return a, nil
}

// DeleteAppointment rechaza agendamentos finalizados.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadAppointment(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusFinalized {
		return s.reject(ctx, "appointment.delete_blocked",
			"Não é possível excluir um agendamento finalizado.", id, ErrFinalized)
	}

	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return s.storeFailure(ctx, "appointment.delete", err)
	}
	s.success(ctx, "appointment.deleted", "Agendamento excluído com sucesso!", id)
	return nil
}

// ConfirmAppointment: agendado -> confirmado.
func (s *Service) ConfirmAppointment(ctx context.Context, id string) (Appointment, error) {
	return s.advance(ctx, id, StatusConfirmed, "appointment.confirmed", "Agendamento confirmado!")
}

// MarkAppointmentReady: agendado|confirmado -> para_retirar.
func (s *Service) MarkAppointmentReady(ctx context.Context, id string) (Appointment, error) {
	return s.advance(ctx, id, StatusReady, "appointment.ready", "Pet pronto para retirada!")
}

func (s *Service) advance(ctx context.Context, id string, to AppointmentStatus, code, msg string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.Status.rank() >= to.rank() {
		return Appointment{}, s.reject(ctx, "appointment.transition_rejected",
			"Mudança de status inválida.", id,
			fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to))
	}

	a.Status = to
	a.UpdatedAt = s.now()

	if err := s.repo.UpdateAppointment(ctx, a); err != nil {
		return Appointment{}, s.storeFailure(ctx, "appointment.status", err)
	}
	s.success(ctx, code, msg, id)
	return a, nil
}

// FinalizeAppointment cierra el atendimento. Con "pending" el precio va al
// saldo pendiente del cliente (no-op si el cliente no existe). Todo en una
// transacción.
func (s *Service) FinalizeAppointment(ctx context.Context, id string, method PaymentMethod) (Appointment, error) {
	if !method.Valid() {
		return Appointment{}, s.reject(ctx, "appointment.finalize_invalid", "Forma de pagamento inválida.", id, invalid("payment_method"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.Status == StatusFinalized {
		return Appointment{}, s.reject(ctx, "appointment.transition_rejected",
			"Agendamento já finalizado.", id,
			fmt.Errorf("%w: already finalized", ErrInvalidTransition))
	}

	now := s.now()
	a.Status = StatusFinalized
	a.Paid = method.Paid()
	a.PaymentMethod = method
	a.UpdatedAt = now

	err = s.repo.WithinTx(ctx, func(tx Repository) error {
		if method == PaymentPending {
			if err := addPending(ctx, tx, a.ClientID, a.Price, now); err != nil {
				return err
			}
		}
		return tx.UpdateAppointment(ctx, a)
	})
	if err != nil {
		return Appointment{}, s.storeFailure(ctx, "appointment.finalize", err)
	}

	s.log.Info("appointment finalized", map[string]any{
		"appointment_id": id,
		"method":         string(method),
		"price":          a.Price.String(),
	})
	s.success(ctx, "appointment.finalized", "Atendimento finalizado com sucesso!", id)
	return a, nil
}

// RegisterPayment registra el pago sin cambiar el estado. Con "pending" suma
// el precio al saldo del cliente; si el agendamento ya se finalizó con
// "pending" el monto queda contado dos veces.
func (s *Service) RegisterPayment(ctx context.Context, id string, method PaymentMethod) (Appointment, error) {
	if !method.Valid() {
		return Appointment{}, s.reject(ctx, "appointment.payment_invalid", "Forma de pagamento inválida.", id, invalid("payment_method"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a.Paid = method.Paid()
	a.PaymentMethod = method
	a.UpdatedAt = now

	err = s.repo.WithinTx(ctx, func(tx Repository) error {
		if method == PaymentPending {
			if err := addPending(ctx, tx, a.ClientID, a.Price, now); err != nil {
				return err
			}
		}
		return tx.UpdateAppointment(ctx, a)
	})
	if err != nil {
		return Appointment{}, s.storeFailure(ctx, "appointment.payment", err)
	}
	s.success(ctx, "appointment.payment_registered", "Pagamento registrado com sucesso!", id)
	return a, nil
}

func (s *Service) loadAppointment(ctx context.Context, id string) (Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Appointment{}, s.reject(ctx, "appointment.not_found", "Agendamento não encontrado.", id, err)
		}
		return Appointment{}, s.storeFailure(ctx, "appointment.load", err)
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

func (s *Service) ListAppointmentsByStatus(ctx context.Context, status AppointmentStatus) ([]Appointment, error) {
	if !status.Valid() {
		return nil, invalid("status")
	}
	return s.repo.ListAppointmentsByStatus(ctx, status)
}

func (s *Service) ListAppointmentsByDate(ctx context.Context, date string) ([]Appointment, error) {
	if !validDate(date) {
		return nil, invalid("date")
	}
	return s.repo.ListAppointmentsByDate(ctx, strings.TrimSpace(date))
}

func (s *Service) ListAppointmentsByClient(ctx context.Context, clientID string) ([]Appointment, error) {
	return s.repo.ListAppointmentsByClient(ctx, clientID)
}

// History devuelve los agendamentos más recientes primero (fecha y hora desc).
func (s *Service) History(ctx context.Context) ([]Appointment, error) {
	items, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	SortByDateDesc(items)
	return items, nil
}

func SortByDateDesc(items []Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].Time > items[j].Time
	})
}
