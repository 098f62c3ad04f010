package service

import (
	"fmt"

	"healthsphere-api/config"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends account emails. Delivery is fire-and-forget from the caller's
// perspective: SendOTPAsync dispatches after the primary state transition
// commits and a failure is logged, never surfaced to the caller.
type Mailer interface {
	SendOTP(toEmail, name, code string) error
	SendOTPAsync(toEmail, name, code string)
}

type mailerService struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewMailerService(cfg config.SMTPConfig, log *logrus.Logger) Mailer {
	return &mailerService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (s *mailerService) SendOTP(toEmail, name, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Email Verification OTP")
	m.SetBody("text/html", otpEmailBody(name, code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	return nil
}

func (s *mailerService) SendOTPAsync(toEmail, name, code string) {
	go func() {
		if err := s.SendOTP(toEmail, name, code); err != nil {
			s.log.Warnf("Failed to send OTP email to %s: %+v", toEmail, err)
		}
	}()
}

func otpEmailBody(name, code string) string {
	return fmt.Sprintf(`<h1>Email Verification</h1>
<p>Hello %s,</p>
<p>Thank you for registering. Please use the following OTP to verify your email:</p>
<h2>%s</h2>
<p>This OTP is valid for 10 minutes.</p>`, name, code)
}
