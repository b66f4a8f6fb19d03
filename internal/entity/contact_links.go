package entity

import (
	"fmt"
	"net/url"
	"regexp"
)

// Prefixo do país usado nos links do WhatsApp.
const whatsAppCountryCode = "91"

var nonDigits = regexp.MustCompile(`\D`)

type ContactLinks struct {
	Call     string `json:"call"`
	Email    string `json:"email,omitempty"`
	WhatsApp string `json:"whatsapp"`
}

// Links monta os atalhos de contato do card do lead.
func (l *Lead) Links() ContactLinks {
	digits := nonDigits.ReplaceAllString(l.Phone, "")
	local := digits
	if len(local) == 12 && local[:2] == whatsAppCountryCode {
		local = local[2:]
	}

	text := fmt.Sprintf("Hi %s, regarding your %s service request...", l.Name, l.Service)
	links := ContactLinks{
		Call:     "tel:" + digits,
		WhatsApp: fmt.Sprintf("https://wa.me/%s%s?text=%s", whatsAppCountryCode, local, url.QueryEscape(text)),
	}
	if l.Email != nil && *l.Email != "" {
		links.Email = "mailto:" + *l.Email
	}
	return links
}
