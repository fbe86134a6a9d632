package domain

import "errors"

// ErrUnknownTransitionKind is returned when a slide references a kind absent from the catalog.
var ErrUnknownTransitionKind = errors.New("unknown transition kind")

// ErrUnknownCallback is returned when a slide references a callback that was never registered.
var ErrUnknownCallback = errors.New("unknown callback")

// ErrIndexOutOfRange is returned when navigation targets an index outside the deck.
var ErrIndexOutOfRange = errors.New("slide index out of range")

// ErrNoCurrentSlide is returned when no slide carries the "current" tag.
// It means the deck was never initialized or its state was corrupted.
var ErrNoCurrentSlide = errors.New("no current slide")

// ErrTransitionInFlight is returned when a transition is requested before the previous one resolved.
var ErrTransitionInFlight = errors.New("transition in flight")

// ErrEmptyDeck is returned when a deck has no slides.
var ErrEmptyDeck = errors.New("deck has no slides")

// ErrDuplicateSlideID is returned when two slides share an ID.
var ErrDuplicateSlideID = errors.New("duplicate slide id")

// ErrUnknownSlide is returned when a slide ID does not belong to the deck.
var ErrUnknownSlide = errors.New("unknown slide")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSelfTransition is returned when a transition would depart from and arrive at the same slide.
var ErrSelfTransition = errors.New("slide cannot transition to itself")
