package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"movieportal/application/ports"
	"movieportal/domain/config"
	"movieportal/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// API is the subset of the SNS client the notifier uses
type API interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ API = (*sns.Client)(nil)

// Message is the notification body
type Message struct {
	Type  string          `json:"type"`
	Movie *entities.Movie `json:"movie"`
}

// Notifier publishes "movie added" notifications to a topic
type Notifier struct {
	client   API
	topicARN string
	config   *config.DomainConfig
	logger   *zap.Logger
}

// NewNotifier creates a notifier for topicARN
func NewNotifier(client API, topicARN string, cfg *config.DomainConfig, logger *zap.Logger) *Notifier {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Notifier{
		client:   client,
		topicARN: topicARN,
		config:   cfg,
		logger:   logger,
	}
}

var _ ports.Notifier = (*Notifier)(nil)

// PublishNewMovie publishes one notification for movie
func (n *Notifier) PublishNewMovie(ctx context.Context, movie *entities.Movie) error {
	body, err := json.Marshal(Message{Type: n.config.NotificationType, Movie: movie})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	out, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(Subject(n.config.NotificationSubject+movie.Title, n.config.MaxSubjectLength)),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("Notification published",
		zap.String("movieId", movie.ID),
		zap.String("messageId", aws.ToString(out.MessageId)),
	)
	return nil
}

// Subject flattens line breaks and cuts s to at most max runes. SNS rejects
// subjects that are longer or span lines.
func Subject(s string, max int) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
