package forum

import "github.com/pkg/errors"

// Error taxonomy returned by the forum core. Specific errors wrap their
// category so callers can match either with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrQuestionNotFound = errors.Wrap(ErrNotFound, "question")
	ErrAnswerNotFound   = errors.Wrap(ErrNotFound, "answer")
	ErrTagNotFound      = errors.Wrap(ErrNotFound, "tag")
	ErrUserNotFound     = errors.Wrap(ErrNotFound, "user")

	ErrDuplicateVote = errors.New("vote already cast")
	ErrUnauthorized  = errors.New("authentication required")
	ErrForbidden     = errors.New("operation not permitted")
	ErrInvalidInput  = errors.New("invalid input")

	ErrConflict      = errors.New("conflict")
	ErrUsernameTaken = errors.Wrap(ErrConflict, "username already taken")
	ErrEmailTaken    = errors.Wrap(ErrConflict, "email already taken")
)

func invalid(reason string) error {
	return errors.Wrap(ErrInvalidInput, reason)
}
