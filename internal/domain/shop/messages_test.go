package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhatsAppPhone(t *testing.T) {
	assert.Equal(t, "5511999990000", WhatsAppPhone("(11) 99999-0000"))
	assert.Equal(t, "5511999990000", WhatsAppPhone("+55 11 99999-0000"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "11/05/2024", FormatDate("2024-05-11"))
	assert.Equal(t, "amanhã", FormatDate("amanhã"))
}

func TestReminderMessage(t *testing.T) {
	msg := ReminderMessage("Ana", "Rex", "2024-05-11", "09:30")
	assert.Contains(t, msg, "Olá Ana")
	assert.Contains(t, msg, "o Rex tem um agendamento para o dia 11/05/2024 às 09:30")
}

func TestWhatsAppURL_EscapesSpaces(t *testing.T) {
	u := WhatsAppURL("11 99999-0000", "Olá Ana & cia")
	assert.Equal(t, "https://wa.me/5511999990000?text=Ol%C3%A1%20Ana%20%26%20cia", u)
}

func TestMapsURL(t *testing.T) {
	addr := ClientAddress(Client{Address: "Rua A, 10", Neighborhood: " ", City: "Santos"})
	assert.Equal(t, "Rua A, 10, Santos", addr)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Rua%20A%2C%2010%2C%20Santos", MapsURL(addr))
}
