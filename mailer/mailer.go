package mailer

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

// Sender is the outbound mail collaborator. The overtime monitor and
// the emailed report both go through it.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
}

func NewSMTPSender(user, password, host, port, from string, tlsEnabled bool) *SMTPSender {
	return &SMTPSender{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	logger := log.WithField("to", to)
	if s.user == "" || s.host == "" || s.port == "" {
		logger.Warn("mail not sent, smtp client is not configured")
		return nil
	}

	auth := sasl.NewPlainClient("", s.user, s.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	msg := strings.NewReader(fmt.Sprintf("Subject: %s\n%s\r\nFrom: %s\r\n\r\n%s\r\n", subject, mimeHeaders, s.from, body))

	var err error
	if s.tlsEnabled {
		err = smtp.SendMailTLS(s.host+":"+s.port, auth, s.from, []string{to}, msg)
	} else {
		err = smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{to}, msg)
	}
	if err != nil {
		log.WithError(err).Error("failed to send mail")
		return err
	}
	logger.Info("mail sent")
	return nil
}
