package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	"github.com/edofi/fiwe/internal/shared/config"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// Transport hands a composed message to the mail server.
type Transport interface {
	Send(m *gomail.Message) error
}

type dialerTransport struct {
	dialer *gomail.Dialer
}

func (t *dialerTransport) Send(m *gomail.Message) error {
	return t.dialer.DialAndSend(m)
}

// NewSMTPTransport dials the configured server for every message.
func NewSMTPTransport(cfg *config.EmailConfig) Transport {
	return &dialerTransport{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// SMTPEmailService sends notification emails. Sends are throttled, retried
// with exponential backoff and short-circuited while the server keeps
// failing.
type SMTPEmailService struct {
	transport  Transport
	from       string
	fromName   string
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint
	retryBase  time.Duration
	logger     logger.Interface
}

func NewSMTPEmailService(cfg *config.EmailConfig, transport Transport, log logger.Interface) *SMTPEmailService {
	delivery := cfg.Delivery

	limit := rate.Inf
	if delivery.RatePerSecond > 0 {
		limit = rate.Limit(delivery.RatePerSecond)
	}
	maxFailures := delivery.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	breakerTimeout := time.Duration(delivery.BreakerTimeoutSeconds) * time.Second
	if breakerTimeout <= 0 {
		breakerTimeout = time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &SMTPEmailService{
		transport:  transport,
		from:       cfg.FromAddress,
		fromName:   cfg.FromName,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
		maxRetries: delivery.MaxRetries,
		retryBase:  500 * time.Millisecond,
		logger:     log,
	}
}

// SendNotificationEmail implements usecases.EmailSender. text is the raw
// notification message, htmlBody the already sanitised rendering of it.
func (s *SMTPEmailService) SendNotificationEmail(ctx context.Context, to, name, subject, text, htmlBody string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("email throttled: %w", err)
	}

	m := s.compose(to, name, subject, text, htmlBody)

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.retryBase

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		_, err := s.breaker.Execute(func() (interface{}, error) {
			return nil, s.transport.Send(m)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(expBackoff), backoff.WithMaxTries(s.maxRetries+1))
	if err != nil {
		s.logger.Warnw("failed to send notification email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("notification email sent", "to", to, "subject", subject)
	return nil
}

func (s *SMTPEmailService) compose(to, name, subject, text, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	if name != "" {
		m.SetAddressHeader("To", to, name)
	} else {
		m.SetHeader("To", to)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.plainBody(subject, text))
	m.AddAlternative("text/html", s.htmlLayout(subject, htmlBody))
	return m
}

func (s *SMTPEmailService) plainBody(subject, text string) string {
	return fmt.Sprintf("%s\n\n%s\n\nRetrouvez cette notification sur %s/notifications\n", subject, text, s.baseURL)
}

func (s *SMTPEmailService) htmlLayout(subject, htmlBody string) string {
	return fmt.Sprintf(`<html>
<body>
	<h2>%s</h2>
	%s
	<p><a href="%s/notifications">Voir mes notifications</a></p>
</body>
</html>`, html.EscapeString(subject), htmlBody, s.baseURL)
}
