package services

import (
	"github.com/anonto42/oomool/backend/pkg/apperrors"
)

// Verification errors carry the messages shown to app users.
var (
	ErrEmailRequired     = apperrors.NewValidationError("이메일이 필요합니다.")
	ErrCodeRequired      = apperrors.NewValidationError("이메일과 인증 코드가 필요합니다.")
	ErrInvalidCode       = apperrors.NewValidationError("유효하지 않은 인증 코드입니다.")
	ErrCodeExpired       = apperrors.New(apperrors.CodeExpired, "인증 코드가 만료되었습니다.", 400)
	ErrSendRateLimited   = apperrors.NewTooManyRequests("너무 많은 요청입니다. 잠시 후 다시 시도해주세요.")
	ErrVerifyRateLimited = apperrors.NewTooManyRequests("인증 시도 횟수를 초과했습니다. 잠시 후 다시 시도해주세요.")
	ErrMailNotConfigured = apperrors.New(apperrors.CodeUnavailable, "메일 발송 설정이 완료되지 않았습니다.", 500)
	ErrMailFailed        = apperrors.Internal("메일 발송에 실패했습니다.", nil)
	ErrStorage           = apperrors.Internal("서버 오류가 발생했습니다.", nil)
)

// Community errors.
var (
	ErrTargetNotFound     = apperrors.NewNotFoundError("Target not found")
	ErrInvalidTarget      = apperrors.NewValidationError("Invalid target_type")
	ErrUserNotFound       = apperrors.NewNotFoundError("User not found")
	ErrSelfFollow         = apperrors.NewValidationError("You cannot follow yourself")
	ErrPostNotFound       = apperrors.NewNotFoundError("Post not found")
	ErrQuestionNotFound   = apperrors.NewNotFoundError("Question not found")
	ErrAnswerNotFound     = apperrors.NewNotFoundError("Answer not found")
	ErrCommentNotFound    = apperrors.NewNotFoundError("Comment not found")
	ErrParentMismatch     = apperrors.NewValidationError("Parent comment belongs to another post")
	ErrNotCommentAuthor   = apperrors.NewForbiddenError("You can only delete your own comments")
	ErrNotQuestionOwner   = apperrors.NewForbiddenError("Only the question author can accept an answer")
	ErrCannotAcceptOwn    = apperrors.NewValidationError("You cannot accept your own answer")
	ErrNotificationAbsent = apperrors.NewNotFoundError("Notification not found")
)

var ErrSearchQueryRequired = apperrors.NewValidationError("q parameter is required")
