package shop

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus es el estado del atendimento. Solo avanza, nunca retrocede.
// @Enum agendado, confirmado, para_retirar, finalizado
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "agendado"
	StatusConfirmed AppointmentStatus = "confirmado"
	StatusReady     AppointmentStatus = "para_retirar"
	StatusFinalized AppointmentStatus = "finalizado"
)

// rank ordena los estados para validar transiciones forward-only.
func (s AppointmentStatus) rank() int {
	switch s {
	case StatusScheduled:
		return 0
	case StatusConfirmed:
		return 1
	case StatusReady:
		return 2
	case StatusFinalized:
		return 3
	default:
		return -1
	}
}

func (s AppointmentStatus) Valid() bool { return s.rank() >= 0 }

// PaymentMethod
// @Enum credit, debit, cash, pix, pending
type PaymentMethod string

const (
	PaymentCredit  PaymentMethod = "credit"
	PaymentDebit   PaymentMethod = "debit"
	PaymentCash    PaymentMethod = "cash"
	PaymentPix     PaymentMethod = "pix"
	PaymentPending PaymentMethod = "pending"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentDebit, PaymentCash, PaymentPix, PaymentPending:
		return true
	default:
		return false
	}
}

// Paid: "pending" nunca marca como pago.
func (m PaymentMethod) Paid() bool { return m.Valid() && m != PaymentPending }

// DateLayout es el formato de fechas de calendario (appointments, sales, expenses).
const DateLayout = "2006-01-02"

// Client es el tutor del pet. PendingBalance nunca es negativo.
type Client struct {
	ID     string
	UserID string

	Name         string
	Phone        string
	Email        string
	Address      string
	Neighborhood string
	City         string

	PendingBalance decimal.Decimal
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Pet struct {
	ID      string
	UserID  string
	OwnerID string // Client.ID

	Name    string
	Species string
	Breed   string
	Age     *int
	Weight  *decimal.Decimal
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroomingService es un servicio de grooming (banho, tosa...).
type GroomingService struct {
	ID     string
	UserID string

	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int // minutos

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID     string
	UserID string

	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaxiDog es el adicional de busca/entrega, con precio por barrio.
type TaxiDog struct {
	ID     string
	UserID string

	Neighborhood string
	Price        decimal.Decimal
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Appointment struct {
	ID       string
	UserID   string
	PetID    string
	ClientID string

	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	ServiceIDs []string
	TaxiDogID  string // vacío = sin taxi dog

	Status AppointmentStatus

	// Price se congela al crear: suma de servicios + taxi dog.
	Price         decimal.Decimal
	Paid          bool
	PaymentMethod PaymentMethod // vacío = sin pago registrado
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SaleLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Sale struct {
	ID       string
	UserID   string
	ClientID string // opcional

	Lines         []SaleLine
	Date          string
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	Paid          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Expense struct {
	ID     string
	UserID string

	Description string
	Amount      decimal.Decimal
	Category    string
	Date        string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfile es el perfil del negocio; uno por usuario.
type UserProfile struct {
	ID           string
	UserID       string
	Name         string
	BusinessName string
	Email        string
	Phone        string
	Address      string
	Logo         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
