package models

import (
	"errors"
	"fmt"
)

// Storage collection names. Relational tables share the name of their gorm table.
const (
	CollectionUsers             = "users"
	CollectionPosts             = "community_posts"
	CollectionComments          = "comments"
	CollectionQuestions         = "questions"
	CollectionAnswers           = "answers"
	CollectionLikes             = "likes"
	CollectionFollows           = "follows"
	CollectionNotifications     = "notifications"
	CollectionVerificationCodes = "verification_codes"
	CollectionBookmarks         = "bookmarks"
	CollectionCurious           = "curious"
)

var ErrUnknownTargetType = errors.New("unknown target type")

// TargetType tags the entity a Like or Notification points at.
type TargetType string

const (
	TargetPost     TargetType = "post"
	TargetComment  TargetType = "comment"
	TargetAnswer   TargetType = "answer"
	TargetQuestion TargetType = "question"
	TargetUser     TargetType = "user"
)

func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(s); t {
	case TargetPost, TargetComment, TargetAnswer, TargetQuestion, TargetUser:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTargetType, s)
	}
}

// Likeable reports whether users can like entities of this type.
func (t TargetType) Likeable() bool {
	return t == TargetPost || t == TargetComment || t == TargetAnswer
}

// Target is a polymorphic reference: a type tag plus the id within that type's collection.
type Target struct {
	Type TargetType
	ID   string
}

func PostTarget(id string) Target     { return Target{Type: TargetPost, ID: id} }
func CommentTarget(id string) Target  { return Target{Type: TargetComment, ID: id} }
func AnswerTarget(id string) Target   { return Target{Type: TargetAnswer, ID: id} }
func QuestionTarget(id string) Target { return Target{Type: TargetQuestion, ID: id} }
func UserTarget(id string) Target     { return Target{Type: TargetUser, ID: id} }

// Collection resolves the storage collection holding the target.
func (t Target) Collection() (string, error) {
	switch t.Type {
	case TargetPost:
		return CollectionPosts, nil
	case TargetComment:
		return CollectionComments, nil
	case TargetAnswer:
		return CollectionAnswers, nil
	case TargetQuestion:
		return CollectionQuestions, nil
	case TargetUser:
		return CollectionUsers, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTargetType, t.Type)
	}
}

// LikeableCollection is Collection restricted to post, comment and answer.
func (t Target) LikeableCollection() (string, error) {
	if !t.Type.Likeable() {
		return "", fmt.Errorf("%w: %q is not likeable", ErrUnknownTargetType, t.Type)
	}
	return t.Collection()
}

func (t Target) String() string {
	return string(t.Type) + ":" + t.ID
}
