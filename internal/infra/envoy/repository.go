package envoy

import "context"

//go:generate mockgen -source=repository.go -destination=mock.go -package=envoy

// NoteRepository posts private notes onto visitor entries.
type NoteRepository interface {
	AddPrivateNote(ctx context.Context, entryID, message string) error
}
