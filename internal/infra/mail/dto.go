package mail

type LeadAlertData struct {
	LeadID  string
	Name    string
	Phone   string
	Service string
	Status  string
	Amount  string
	Method  string
	When    string
}

type EmailSender struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string

	dialer messageDialer
}
