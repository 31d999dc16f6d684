package shop

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Los textos van en portugués: son los que recibe el cliente final.

// ReminderMessage arma el recordatorio de agendamento.
func ReminderMessage(clientName, petName, date, hour string) string {
	return fmt.Sprintf(
		"Olá %s, gostaríamos de lembrar que o %s tem um agendamento para o dia %s às %s. Por favor, confirme sua presença. Obrigado!",
		clientName, petName, FormatDate(date), hour,
	)
}

func PetReadyMessage(clientName, petName string) string {
	return fmt.Sprintf(
		"Olá %s, o %s já está pronto para ser retirado. Estamos aguardando sua visita!",
		clientName, petName,
	)
}

// FormatDate pasa YYYY-MM-DD a dd/MM/yyyy; si no parsea, devuelve la entrada.
func FormatDate(date string) string {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// WhatsAppPhone deja solo dígitos y agrega el código de país 55 si falta.
func WhatsAppPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	return digits
}

// WhatsAppURL arma el link wa.me con el mensaje pre-cargado.
func WhatsAppURL(phone, message string) string {
	return "https://wa.me/" + WhatsAppPhone(phone) + "?text=" + escape(message)
}

func MapsURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + escape(address)
}

// ClientAddress junta dirección, barrio y ciudad para el link de mapas.
func ClientAddress(c Client) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Address, c.Neighborhood, c.City} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// escape codifica como encodeURIComponent (espacios como %20).
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
