package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"github.com/anonto42/oomool/backend/pkg/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers verification codes.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

const verificationSubject = "[우물] 이메일 인증번호"

const verificationTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 40px 20px;">
<h1 style="color: #0165FE; font-size: 24px; margin-bottom: 30px;">우물 이메일 인증</h1>
<p style="font-size: 16px; color: #333; margin-bottom: 20px;">안녕하세요! 우물 회원가입을 위한 인증번호입니다.</p>
<div style="background: #F5F7FA; border-radius: 12px; padding: 30px; text-align: center; margin: 30px 0;">
<p style="font-size: 14px; color: #666; margin-bottom: 10px;">인증번호</p>
<p style="font-size: 36px; font-weight: bold; color: #0165FE; letter-spacing: 8px; margin: 0;">{{.Code}}</p>
</div>
<p style="font-size: 14px; color: #999;">이 인증번호는 {{.Minutes}}분간 유효합니다.<br>본인이 요청하지 않았다면 이 이메일을 무시해주세요.</p>
</div>`

type SMTPMailer struct {
	cfg      config.MailConfig
	minutes  int
	template *template.Template
}

func NewSMTPMailer(cfg config.MailConfig, codeTTLMinutes int) (*SMTPMailer, error) {
	tmpl, err := template.New("verification").Parse(verificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verification template: %w", err)
	}
	return &SMTPMailer{cfg: cfg, minutes: codeTTLMinutes, template: tmpl}, nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body, err := m.render(code)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	// UseTLS means STARTTLS (587); otherwise implicit SSL (465).
	d.SSL = !m.cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) render(code string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: m.minutes}
	if err := m.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render verification email: %w", err)
	}
	return buf.String(), nil
}
