package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/nivela-brasil/intake-backend/config"
	"github.com/nivela-brasil/intake-backend/logger"
	"github.com/nivela-brasil/intake-backend/types"
)

const distributorNotificationTemplate = `
<h2>Nova solicitação de distribuição NIVELA®</h2>
<p>Uma nova solicitação de distribuição foi recebida pela landing page.</p>
<table cellpadding="4">
  <tr><td><strong>Nome</strong></td><td>{{.Name}}</td></tr>
  <tr><td><strong>E-mail</strong></td><td>{{.Email}}</td></tr>
  <tr><td><strong>Telefone</strong></td><td>{{.Phone}}</td></tr>
  {{if .Company}}<tr><td><strong>Empresa</strong></td><td>{{.Company}}</td></tr>{{end}}
  {{if .City}}<tr><td><strong>Cidade</strong></td><td>{{.City}}{{if .State}} / {{.State}}{{end}}</td></tr>{{end}}
  {{if .Experience}}<tr><td><strong>Experiência</strong></td><td>{{.Experience}}</td></tr>{{end}}
  {{if .Message}}<tr><td><strong>Mensagem</strong></td><td>{{.Message}}</td></tr>{{end}}
</table>
<p>Recebida em {{.CreatedAt.Format "02/01/2006 15:04"}} (UTC).</p>
`

// emailSender is the subset of the Resend client the service uses, extracted
// so tests can stub delivery.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// NotificationService emails the sales team when a new distributor application
// arrives. Delivery is best-effort: a failed email never fails the submission.
type NotificationService struct {
	config *config.NotificationConfig
	sender emailSender
	tmpl   *template.Template
}

// NewNotificationService builds the service. Returns nil when notifications
// are disabled, and callers treat a nil service as a no-op.
func NewNotificationService(cfg *config.NotificationConfig) *NotificationService {
	if cfg == nil || !cfg.Enabled {
		logger.GetLogger().Info("Distributor notifications disabled")
		return nil
	}
	client := resend.NewClient(cfg.ResendAPIKey)
	return newNotificationService(cfg, client.Emails)
}

func newNotificationService(cfg *config.NotificationConfig, sender emailSender) *NotificationService {
	tmpl := template.Must(template.New("distributor").Parse(distributorNotificationTemplate))
	return &NotificationService{
		config: cfg,
		sender: sender,
		tmpl:   tmpl,
	}
}

// NotifyDistributorApplication sends the sales notification for a persisted
// application. Safe on a nil receiver.
func (s *NotificationService) NotifyDistributorApplication(ctx context.Context, d *types.Distributor) error {
	if s == nil {
		return nil
	}
	log := logger.GetLogger()
	start := time.Now()

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, d); err != nil {
		log.Errorw("Failed to render notification template", "error", err)
		return fmt.Errorf("render notification: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{s.config.SalesAddress},
		Subject: fmt.Sprintf("Nova solicitação de distribuição: %s", d.Name),
		Html:    html.String(),
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		log.Errorw("Failed to send distributor notification",
			"error", err,
			"email", logger.MaskEmail(d.Email))
		return fmt.Errorf("send notification: %w", err)
	}

	log.Infow("Distributor notification sent",
		"email", logger.MaskEmail(d.Email),
		"durationMs", time.Since(start).Milliseconds())
	return nil
}
