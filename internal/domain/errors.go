package domain

import (
	"errors"
	"fmt"
)

type Entity string

const (
	EntityParticipant Entity = "participant"
	EntityChannel     Entity = "channel"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrParticipantNotFound = &NotFoundError{Entity: EntityParticipant}
	ErrChannelNotFound     = &NotFoundError{Entity: EntityChannel}
)

// NotFoundError reports a participant or channel id the registry does not
// track. It matches ErrNotFound and the per-entity sentinels under errors.Is.
type NotFoundError struct {
	Entity Entity
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}

	var other *NotFoundError
	if errors.As(target, &other) {
		return other.Entity == e.Entity
	}
	return false
}

func participantNotFound(id ParticipantID) error {
	return &NotFoundError{Entity: EntityParticipant, ID: uint64(id)}
}

func channelNotFound(id ChannelID) error {
	return &NotFoundError{Entity: EntityChannel, ID: uint64(id)}
}
