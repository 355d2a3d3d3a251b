package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/diewo77/presupuestos/internal/models"
	"github.com/diewo77/presupuestos/internal/pdf"
	"github.com/diewo77/presupuestos/internal/store"
)

// ShareChannel is an external share target.
type ShareChannel string

const (
	ChannelMessaging ShareChannel = "messaging"
	ChannelEmail     ShareChannel = "email"
)

var ErrUnknownChannel = errors.New("unknown_channel")

// ShareResult is what the client needs to complete a share: the rendered
// artifact, its filename, the external launch URL, and the budget after its
// status transition.
type ShareResult struct {
	Channel   ShareChannel   `json:"channel"`
	LaunchURL string         `json:"launchUrl"`
	Filename  string         `json:"filename"`
	Artifact  []byte         `json:"-"`
	Budget    *models.Budget `json:"budget"`
}

// ShareService turns rendered documents into shareable artifacts and records
// the resulting status transitions.
type ShareService struct {
	Store   *store.Store
	Budgets *BudgetService
}

func NewShareService(st *store.Store, budgets *BudgetService) *ShareService {
	return &ShareService{Store: st, Budgets: budgets}
}

// Download renders the document artifact without touching the budget's
// status.
func (s *ShareService) Download(b *models.Budget, p *models.Profile) ([]byte, string, error) {
	data, err := pdf.Render(b, p)
	if err != nil {
		return nil, "", err
	}
	return data, pdf.ArtifactName(b), nil
}

// Share composes the channel message, renders the artifact, and marks the
// budget sent. The launch is fire-and-forget: the status flips to sent no
// matter what the user does in the external app, and no confirmation is ever
// awaited.
func (s *ShareService) Share(channel ShareChannel, b *models.Budget, p *models.Profile) (*ShareResult, error) {
	var launchURL string
	switch channel {
	case ChannelMessaging:
		launchURL = "https://wa.me/?text=" + url.QueryEscape(MessagingText(b, p))
	case ChannelEmail:
		launchURL = "mailto:?subject=" + url.QueryEscape(EmailSubject(p)) + "&body=" + url.QueryEscape(EmailBody(b, p))
	default:
		return nil, ErrUnknownChannel
	}

	artifact, filename, err := s.Download(b, p)
	if err != nil {
		return nil, err
	}

	updated, err := s.Budgets.UpdateStatus(b.ID, models.StatusSent)
	if err != nil {
		return nil, err
	}

	return &ShareResult{
		Channel:   channel,
		LaunchURL: launchURL,
		Filename:  filename,
		Artifact:  artifact,
		Budget:    updated,
	}, nil
}

// MarkAccepted records the manual confirmation transition. No artifact.
func (s *ShareService) MarkAccepted(id string) (*models.Budget, error) {
	return s.Budgets.UpdateStatus(id, models.StatusAccepted)
}

// MessagingText is the pre-filled WhatsApp message.
func MessagingText(b *models.Budget, p *models.Profile) string {
	return fmt.Sprintf("Hola %s, le envio el presupuesto de %s.\n\nTotal: %s\n\nSaludos,\n%s",
		b.ClientName, models.CategoryPhrases[b.Category], pdf.FormatAmount(b.Total), p.Name)
}

// EmailSubject is the pre-filled mail subject.
func EmailSubject(p *models.Profile) string {
	name := p.BusinessName
	if name == "" {
		name = p.Name
	}
	return "Presupuesto - " + name
}

// EmailBody is the pre-filled mail body.
func EmailBody(b *models.Budget, p *models.Profile) string {
	return fmt.Sprintf("Estimado/a %s,\n\nAdjunto encontrara el presupuesto solicitado.\n\nTotal: %s\n\nQuedo a disposicion para cualquier consulta.\n\nSaludos cordiales,\n%s\n%s",
		b.ClientName, pdf.FormatAmount(b.Total), p.Name, p.Phone)
}
