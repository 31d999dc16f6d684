package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pet-grooming-manager/internal/domain/shop"
)

// service_ids se guarda como JSONB (array de ids).
const appointmentColumns = `
	id, user_id, pet_id, client_id,
	date, time, service_ids, taxi_dog_id,
	status, price, paid, payment_method, notes,
	created_at, updated_at`

func scanAppointment(sc scanner) (shop.Appointment, error) {
	var (
		a    shop.Appointment
		ids  []byte
		taxi sql.NullString
	)
	if err := sc.Scan(
		&a.ID,
		&a.UserID,
		&a.PetID,
		&a.ClientID,
		&a.Date,
		&a.Time,
		&ids,
		&taxi,
		&a.Status,
		&a.Price,
		&a.Paid,
		&a.PaymentMethod,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return shop.Appointment{}, err
	}
	a.TaxiDogID = taxi.String

	if len(ids) > 0 {
		if err := json.Unmarshal(ids, &a.ServiceIDs); err != nil {
			return shop.Appointment{}, fmt.Errorf("decode service_ids: %w", err)
		}
	}
	return a, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) CreateAppointment(ctx context.Context, a shop.Appointment) error {
	ids, err := encodeJSON(nonNil(a.ServiceIDs))
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.UserID,
		a.PetID,
		a.ClientID,
		a.Date,
		a.Time,
		ids,
		optionalID(a.TaxiDogID),
		string(a.Status),
		a.Price,
		a.Paid,
		string(a.PaymentMethod),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (s *Store) UpdateAppointment(ctx context.Context, a shop.Appointment) error {
	ids, err := encodeJSON(nonNil(a.ServiceIDs))
	if err != nil {
		return err
	}
	return affected(s.q.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $3,
			client_id = $4,
			date = $5,
			time = $6,
			service_ids = $7,
			taxi_dog_id = $8,
			status = $9,
			price = $10,
			paid = $11,
			payment_method = $12,
			notes = $13,
			updated_at = $14
		WHERE id = $1 AND `+tenant(2),
		a.ID,
		shop.UserFrom(ctx),
		a.PetID,
		a.ClientID,
		a.Date,
		a.Time,
		ids,
		optionalID(a.TaxiDogID),
		string(a.Status),
		a.Price,
		a.Paid,
		string(a.PaymentMethod),
		a.Notes,
		a.UpdatedAt,
	))
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM appointments WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetAppointment(ctx context.Context, id string) (shop.Appointment, error) {
	return queryOne(ctx, s.q, scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListAppointments(ctx context.Context) ([]shop.Appointment, error) {
	return queryAll(ctx, s.q, scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}

func (s *Store) listAppointmentsWhere(ctx context.Context, column, value string) ([]shop.Appointment, error) {
	return queryAll(ctx, s.q, scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE `+column+` = $1 AND `+tenant(2)+` ORDER BY seq`,
		value, shop.UserFrom(ctx))
}

func (s *Store) ListAppointmentsByStatus(ctx context.Context, status shop.AppointmentStatus) ([]shop.Appointment, error) {
	return s.listAppointmentsWhere(ctx, "status", string(status))
}

func (s *Store) ListAppointmentsByDate(ctx context.Context, date string) ([]shop.Appointment, error) {
	return s.listAppointmentsWhere(ctx, "date", date)
}

func (s *Store) ListAppointmentsByClient(ctx context.Context, clientID string) ([]shop.Appointment, error) {
	return s.listAppointmentsWhere(ctx, "client_id", clientID)
}

func (s *Store) appointmentExists(ctx context.Context, cond string, value string) (bool, error) {
	return exists(ctx, s.q,
		`SELECT 1 FROM appointments WHERE `+cond+` AND `+tenant(2),
		value, shop.UserFrom(ctx))
}

func (s *Store) HasAppointmentsForClient(ctx context.Context, clientID string) (bool, error) {
	return s.appointmentExists(ctx, "client_id = $1", clientID)
}

func (s *Store) HasAppointmentsForPet(ctx context.Context, petID string) (bool, error) {
	return s.appointmentExists(ctx, "pet_id = $1", petID)
}

func (s *Store) HasAppointmentsForService(ctx context.Context, serviceID string) (bool, error) {
	return s.appointmentExists(ctx, "service_ids @> jsonb_build_array($1::text)", serviceID)
}

func (s *Store) HasAppointmentsForTaxiDog(ctx context.Context, taxiDogID string) (bool, error) {
	return s.appointmentExists(ctx, "taxi_dog_id = $1", taxiDogID)
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
