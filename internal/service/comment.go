package service

import (
	"context"
	"strings"

	"github.com/idoevents/api/internal/model"
)

// CommentRepository defines the interface for comment storage
type CommentRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
}

// CommentService handles comment operations
type CommentService struct {
	commentRepo CommentRepository
	members     MemberDirectory
	hub         Broadcaster
}

// CommentServiceConfig holds configuration for the comment service
type CommentServiceConfig struct {
	CommentRepo CommentRepository
	Members     MemberDirectory
	Hub         Broadcaster
}

// NewCommentService creates a new comment service
func NewCommentService(cfg CommentServiceConfig) *CommentService {
	return &CommentService{
		commentRepo: cfg.CommentRepo,
		members:     cfg.Members,
		hub:         cfg.Hub,
	}
}

// ListByEvent returns all comments for an event with authors resolved
func (s *CommentService) ListByEvent(ctx context.Context, eventID string) ([]*model.CommentDetail, error) {
	comments, err := s.commentRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, comment := range comments {
		if _, ok := seen[comment.UserID]; !ok {
			seen[comment.UserID] = struct{}{}
			ids = append(ids, comment.UserID)
		}
	}

	refs, err := s.members.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*model.CommentDetail, 0, len(comments))
	for _, comment := range comments {
		details = append(details, comment.Detail(authorRef(refs, comment.UserID)))
	}
	return details, nil
}

// Add creates a comment on an event. The author is always the caller:
// any author or event carried in the request payload is discarded.
func (s *CommentService) Add(ctx context.Context, eventID, callerID, text string) (*model.CommentDetail, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	comment := &model.Comment{
		EventID: eventID,
		UserID:  callerID,
		Text:    text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	refs, err := s.members.GetRefs(ctx, []string{callerID})
	if err != nil {
		return nil, err
	}

	detail := comment.Detail(authorRef(refs, callerID))
	s.hub.Broadcast(CommentAdded, detail)
	return detail, nil
}

// authorRef looks up a resolved author, falling back to a bare id ref
func authorRef(refs map[string]model.MemberRef, userID string) model.MemberRef {
	if ref, ok := refs[userID]; ok {
		return ref
	}
	return model.MemberRef{ID: userID}
}
