package mail

import (
	"bytes"
	"fmt"
	"log"
	"text/template"

	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
	"gopkg.in/gomail.v2"
)

const newLeadTemplate = `Novo pedido de serviço pelo site.

Nome: {{.Name}}
Telefone: {{.Phone}}
Serviço: {{.Service}}
Recebido em: {{.When}}

Lead: {{.LeadID}}
`

const paymentTemplate = `Pagamento registrado.

Cliente: {{.Name}}
Serviço: {{.Service}}
Valor: {{.Amount}}
Método: {{.Method}}
Registrado em: {{.When}}

Lead: {{.LeadID}}
`

var (
	newLeadTmpl = template.Must(template.New("new_lead").Parse(newLeadTemplate))
	paymentTmpl = template.Must(template.New("payment").Parse(paymentTemplate))
)

// messageDialer é o pedaço do *gomail.Dialer que o sender usa.
type messageDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from, adminEmail string) *EmailSender {
	return &EmailSender{
		Host:       host,
		Port:       port,
		User:       user,
		Password:   password,
		From:       from,
		AdminEmail: adminEmail,
		dialer:     gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendNewLeadAlert(event queue.LeadEvent) error {
	subject := fmt.Sprintf("Novo lead: %s (%s)", event.Name, event.Service)
	return s.send(subject, newLeadTmpl, alertData(event))
}

func (s *EmailSender) SendPaymentAlert(event queue.LeadEvent) error {
	data := alertData(event)
	subject := fmt.Sprintf("Pagamento de %s recebido de %s", data.Amount, event.Name)
	return s.send(subject, paymentTmpl, data)
}

func (s *EmailSender) send(subject string, tmpl *template.Template, data LeadAlertData) error {
	if s.AdminEmail == "" {
		log.Printf("⚠️ ADMIN_EMAIL vazio, alerta '%s' não enviado", subject)
		return nil
	}

	body, err := renderAlert(tmpl, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.AdminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	log.Printf("📧 Alerta enviado para %s: %s", s.AdminEmail, subject)
	return nil
}

func renderAlert(tmpl *template.Template, data LeadAlertData) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func alertData(event queue.LeadEvent) LeadAlertData {
	return LeadAlertData{
		LeadID:  event.LeadID,
		Name:    event.Name,
		Phone:   event.Phone,
		Service: event.Service,
		Status:  event.Status,
		Amount:  usecase.FormatRupees(event.Amount),
		Method:  event.PaymentMethod,
		When:    event.OccurredAt.UTC().Format("02/01/2006 15:04 MST"),
	}
}
