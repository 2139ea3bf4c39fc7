package chat

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository"
	"github.com/jwalitptl/sitehub-api/internal/service/activity"
	"github.com/jwalitptl/sitehub-api/internal/service/badge"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

// BoardResolver returns the chat board owned by a viewer session.
type BoardResolver interface {
	Board(viewer model.Viewer) *Board
}

// Thread is one project's chat as seen by a viewer.
type Thread struct {
	ProjectID   string              `json:"project_id"`
	Messages    []model.ChatMessage `json:"messages"`
	UnreadCount int                 `json:"unread_count"`
	Badge       badge.Badge         `json:"badge"`
}

type SendResult struct {
	Message        model.ChatMessage `json:"message"`
	ReplyScheduled bool              `json:"reply_scheduled"`
	Thread         Thread            `json:"thread"`
}

type Service interface {
	Thread(ctx context.Context, viewer model.Viewer, projectID string) (Thread, error)
	Unread(ctx context.Context, viewer model.Viewer, projectID string) (badge.Badge, error)
	Send(ctx context.Context, viewer model.Viewer, projectID, content string) (SendResult, error)
	MarkRead(ctx context.Context, viewer model.Viewer, projectID string) (Thread, error)
}

type service struct {
	boards    BoardResolver
	projects  repository.ProjectRepository
	publisher activity.Publisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(boards BoardResolver, projects repository.ProjectRepository, publisher activity.Publisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		boards:    boards,
		projects:  projects,
		publisher: publisher,
		logger:    log.With("chat"),
		metrics:   m,
	}
}

func (s *service) Thread(ctx context.Context, viewer model.Viewer, projectID string) (Thread, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return Thread{}, err
	}
	return thread(s.boards.Board(viewer), projectID, viewer.Role), nil
}

func (s *service) Unread(ctx context.Context, viewer model.Viewer, projectID string) (badge.Badge, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return badge.Badge{}, err
	}
	return badge.View(s.boards.Board(viewer).UnreadCount(projectID, viewer.Role)), nil
}

func (s *service) Send(ctx context.Context, viewer model.Viewer, projectID, content string) (SendResult, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return SendResult{}, err
	}

	board := s.boards.Board(viewer)
	msg, scheduled, err := board.Send(projectID, viewer, content)
	if err != nil {
		return SendResult{}, err
	}

	if s.metrics != nil {
		s.metrics.ChatMessagesSent.WithLabelValues(string(viewer.Role)).Inc()
	}
	event := activity.For(viewer, model.ActivityChatMessageSent)
	event.ProjectID = projectID
	event.SubjectID = msg.ID
	event.Payload = map[string]interface{}{"reply_scheduled": scheduled}
	s.publish(ctx, event)

	return SendResult{
		Message:        msg,
		ReplyScheduled: scheduled,
		Thread:         thread(board, projectID, viewer.Role),
	}, nil
}

func (s *service) MarkRead(ctx context.Context, viewer model.Viewer, projectID string) (Thread, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return Thread{}, err
	}

	board := s.boards.Board(viewer)
	changed := board.MarkRead(projectID)

	if s.metrics != nil {
		s.metrics.ChatThreadsRead.Inc()
	}
	event := activity.For(viewer, model.ActivityChatRead)
	event.ProjectID = projectID
	event.Payload = map[string]interface{}{"changed": changed}
	s.publish(ctx, event)

	return thread(board, projectID, viewer.Role), nil
}

func (s *service) requireProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return apperrors.BadRequest("project id is required", nil)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("project", err)
		}
		return apperrors.Internal("failed to load project", err)
	}
	return nil
}

func (s *service) publish(ctx context.Context, event model.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error(err, "failed to publish chat activity", "type", string(event.Type))
	}
}

func thread(board *Board, projectID string, role model.Role) Thread {
	unread := board.UnreadCount(projectID, role)
	return Thread{
		ProjectID:   projectID,
		Messages:    board.Messages(projectID),
		UnreadCount: unread,
		Badge:       badge.View(unread),
	}
}

// BoardBuilder creates the chat board of a new session, wiring the
// automatic reply into metrics and activity events.
type BoardBuilder struct {
	Reply     ReplyConfig
	Seed      func() []model.ChatMessage
	Publisher activity.Publisher
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func (b BoardBuilder) Build(viewer model.Viewer, tasks Scheduler) *Board {
	log := b.Logger
	if log == nil {
		log = logger.Nop()
	}

	var seed []model.ChatMessage
	if b.Seed != nil {
		seed = b.Seed()
	}

	return NewBoard(seed, BoardOptions{
		Reply:     b.Reply,
		Scheduler: tasks,
		Now:       b.Now,
		OnReply: func(reply model.ChatMessage) {
			if b.Metrics != nil {
				b.Metrics.ChatAutoReplies.Inc()
			}
			if b.Publisher == nil {
				return
			}
			event := activity.For(viewer, model.ActivityChatAutoReply)
			event.ProjectID = reply.ProjectID
			event.SubjectID = reply.ID
			// The request that scheduled the reply is long gone.
			if err := b.Publisher.Publish(context.Background(), event); err != nil {
				log.Error(err, "failed to publish auto reply activity", "project_id", reply.ProjectID)
			}
		},
		OnReplyError: func(err error) {
			log.Warn("auto reply not scheduled", "user_id", viewer.UserID, "error", err.Error())
		},
	})
}
