package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/sitehub-api/internal/model"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

// Scheduler runs a delayed task owned by the board's session.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func(), err error)
}

// ReplyConfig controls the automatic answer a non-admin message receives.
type ReplyConfig struct {
	Enabled    bool
	Delay      time.Duration
	SenderName string
	Content    string
}

func DefaultReplyConfig() ReplyConfig {
	return ReplyConfig{
		Enabled:    true,
		Delay:      2 * time.Second,
		SenderName: "Construction Team",
		Content:    "Thanks for your message! Our team will get back to you shortly.",
	}
}

// BoardOptions wires a board to its session.
type BoardOptions struct {
	Reply     ReplyConfig
	Scheduler Scheduler
	Now       func() time.Time
	// OnReply is called after an automatic reply was appended.
	OnReply func(model.ChatMessage)
	// OnReplyError is called when the reply could not be scheduled.
	OnReplyError func(error)
}

// Board is the append-only chat state of one session, covering every
// project thread the viewer can open.
type Board struct {
	mu       sync.RWMutex
	messages []model.ChatMessage
	opts     BoardOptions
}

func NewBoard(seed []model.ChatMessage, opts BoardOptions) *Board {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	messages := make([]model.ChatMessage, len(seed))
	copy(messages, seed)
	return &Board{messages: messages, opts: opts}
}

// Messages returns the thread of one project in insertion order.
func (b *Board) Messages(projectID string) []model.ChatMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.ChatMessage, 0)
	for _, m := range b.messages {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

// UnreadCount counts unread messages of the project sent by a role other
// than the viewer's. Own messages never count as unread.
func (b *Board) UnreadCount(projectID string, viewer model.Role) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, m := range b.messages {
		if m.ProjectID == projectID && m.SenderRole != viewer && !m.Read {
			n++
		}
	}
	return n
}

// MarkRead flags the whole project thread as read, whoever sent each
// message, and returns how many messages changed.
func (b *Board) MarkRead(projectID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := 0
	for i := range b.messages {
		if b.messages[i].ProjectID == projectID && !b.messages[i].Read {
			b.messages[i].Read = true
			changed++
		}
	}
	return changed
}

// Send appends a message from sender. Non-admin senders get one automatic
// admin reply after the configured delay; the returned bool reports
// whether it was scheduled.
func (b *Board) Send(projectID string, sender model.Viewer, content string) (model.ChatMessage, bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.ChatMessage{}, false, apperrors.BadRequest("message content is required", nil)
	}
	if projectID == "" {
		return model.ChatMessage{}, false, apperrors.BadRequest("project id is required", nil)
	}

	msg := model.ChatMessage{
		ID:         uuid.NewString(),
		Content:    content,
		SenderName: sender.Name,
		SenderRole: sender.Role,
		Timestamp:  b.opts.Now(),
		ProjectID:  projectID,
		Read:       true,
	}
	b.append(msg)

	return msg, b.scheduleReply(projectID, sender.Role), nil
}

func (b *Board) scheduleReply(projectID string, role model.Role) bool {
	if !b.opts.Reply.Enabled || b.opts.Scheduler == nil {
		return false
	}

	switch role {
	case model.RoleAdmin:
		return false
	case model.RoleClient, model.RoleProvider:
	default:
		return false
	}

	_, err := b.opts.Scheduler.After(b.opts.Reply.Delay, func() {
		reply := model.ChatMessage{
			ID:         uuid.NewString(),
			Content:    b.opts.Reply.Content,
			SenderName: b.opts.Reply.SenderName,
			SenderRole: model.RoleAdmin,
			Timestamp:  b.opts.Now(),
			ProjectID:  projectID,
			Read:       false,
		}
		b.append(reply)
		if b.opts.OnReply != nil {
			b.opts.OnReply(reply)
		}
	})
	if err != nil {
		if b.opts.OnReplyError != nil {
			b.opts.OnReplyError(err)
		}
		return false
	}
	return true
}

func (b *Board) append(m model.ChatMessage) {
	b.mu.Lock()
	b.messages = append(b.messages, m)
	b.mu.Unlock()
}
