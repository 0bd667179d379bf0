package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/pkg/config"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
	"github.com/studentools/studentools-api/pkg/jobs"
)

// FeedbackEntry is one retained feedback submission.
type FeedbackEntry struct {
	ID        string
	Type      string
	Message   string
	Email     string
	CreatedAt time.Time
}

type mailSender interface {
	Send(ctx context.Context, subject, body string) error
}

type sendGridMailer struct {
	apiKey string
	from   string
	to     string
}

func (m *sendGridMailer) Send(_ context.Context, subject, body string) error {
	from := mail.NewEmail("studentools", m.from)
	to := mail.NewEmail("", m.to)
	message := mail.NewSingleEmail(from, subject, to, body, "")
	resp, err := sendgrid.NewSendClient(m.apiKey).Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// FeedbackService retains a bounded log of submissions and notifies by
// email in the background.
type FeedbackService struct {
	cfg       config.FeedbackConfig
	validator *validator.Validate
	logger    *zap.Logger
	mailer    mailSender
	queue     *jobs.Queue

	mu      sync.Mutex
	entries []FeedbackEntry
}

// NewFeedbackService constructs a FeedbackService. Email notification is
// disabled when no SendGrid key or recipient is configured.
func NewFeedbackService(cfg config.FeedbackConfig, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 500
	}

	s := &FeedbackService{
		cfg:       cfg,
		validator: validate,
		logger:    logger,
	}
	if cfg.SendGridAPIKey != "" && cfg.MailTo != "" {
		s.mailer = &sendGridMailer{apiKey: cfg.SendGridAPIKey, from: cfg.MailFrom, to: cfg.MailTo}
	}
	s.queue = jobs.NewQueue("feedback-email", s.handleEmailJob, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the background email worker.
func (s *FeedbackService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the background email worker.
func (s *FeedbackService) Stop() {
	s.queue.Stop()
}

// Submit records a feedback entry and queues the email notification.
func (s *FeedbackService) Submit(_ context.Context, req dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	feedbackType := req.Type
	if feedbackType == "" {
		feedbackType = "general"
	}
	entry := FeedbackEntry{
		ID:        uuid.NewString(),
		Type:      feedbackType,
		Message:   req.Message,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.cfg.MaxEntries {
		s.entries = s.entries[len(s.entries)-s.cfg.MaxEntries:]
	}
	s.mu.Unlock()

	if s.mailer != nil {
		if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: "feedback_email", Payload: entry}); err != nil {
			s.logger.Warn("failed to queue feedback email", zap.Error(err))
		}
	}

	s.logger.Info("feedback received",
		zap.String("feedback_id", entry.ID),
		zap.String("type", entry.Type),
	)
	return &dto.FeedbackResponse{Message: "feedback received"}, nil
}

// Recent returns up to limit of the newest entries, newest first.
func (s *FeedbackService) Recent(limit int) []FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]FeedbackEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.entries[len(s.entries)-1-i]
	}
	return out
}

func (s *FeedbackService) handleEmailJob(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(FeedbackEntry)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	subject := fmt.Sprintf("[studentools] %s feedback", entry.Type)
	body := fmt.Sprintf("Received: %s\nType: %s\nReply to: %s\n\n%s",
		entry.CreatedAt.Format(time.RFC3339), entry.Type, entry.Email, entry.Message)
	return s.mailer.Send(ctx, subject, body)
}
