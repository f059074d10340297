package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, fullName string) error
	SendPasswordResetOTP(email, fullName, code string) error
	SendPasswordChangedEmail(email, fullName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for registering with us. Your account has been successfully created.</p>
		<p>Best regards,<br>The AlumniHub Team</p>
	`, fullName)

	if err := s.send(email, "Welcome to AlumniHub!", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetOTP(email, fullName, code string) error {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>Hello %s,</p>
		<p>You have requested to reset your password. Use the OTP below to proceed:</p>
		<p><strong>%s</strong></p>
		<p>Note: this OTP will expire in 10 minutes.</p>
		<p>If you did not request this, please ignore this email or contact support.</p>
	`, fullName, code)

	if err := s.send(email, "Password Reset OTP", body); err != nil {
		return fmt.Errorf("failed to send password reset OTP: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordChangedEmail(email, fullName string) error {
	body := fmt.Sprintf(`
		<h3>Password changed</h3>
		<p>Hello %s,</p>
		<p>Your password has been successfully changed.</p>
		<p>If you did not perform this action, please contact our support team immediately.</p>
	`, fullName)

	if err := s.send(email, "Password Changed Successfully", body); err != nil {
		return fmt.Errorf("failed to send password changed email: %w", err)
	}
	return nil
}
