// Package popup models the cross-window messaging contract used by the
// provider's popup flow. The popup posts a callback message to its opener;
// the opener's listener is single-shot and only trusts allow-listed origins,
// so a hostile window cannot inject a code/state pair.
package popup

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-client/auth"
	"github.com/pkg/errors"
)

// MessageType discriminates callback messages. The two providers use
// different conventions; both are part of the wire contract.
type MessageType string

const (
	MessageLinkedInCallback MessageType = "linkedin_callback"
	MessageGoogleCallback   MessageType = "GOOGLE_OAUTH_CALLBACK"
)

// ExpectedType returns the callback message type a provider's popup posts.
func ExpectedType(provider auth.Provider) MessageType {
	if provider == auth.ProviderGoogle {
		return MessageGoogleCallback
	}
	return MessageLinkedInCallback
}

// Message is the payload a popup posts back to its opener.
type Message struct {
	Type  MessageType `json:"type"`
	Code  string      `json:"code"`
	State string      `json:"state"`
}

// Listener waits for the first matching callback message and then stops
// accepting deliveries. Removal-after-first-match prevents a callback from
// being processed twice.
type Listener struct {
	wantType       MessageType
	allowedOrigins map[string]struct{}

	mu       sync.Mutex
	consumed bool
	result   chan Message
}

func NewListener(wantType MessageType, allowedOrigins []string) *Listener {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = struct{}{}
	}
	return &Listener{
		wantType:       wantType,
		allowedOrigins: origins,
		result:         make(chan Message, 1),
	}
}

// Deliver offers a message to the listener and reports whether it was
// consumed. Messages of the wrong type, from a disallowed origin, or
// arriving after the first match are ignored.
func (l *Listener) Deliver(origin string, msg Message) bool {
	if msg.Type != l.wantType {
		return false
	}
	if _, ok := l.allowedOrigins[origin]; !ok {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.consumed {
		return false
	}
	l.consumed = true
	l.result <- msg
	return true
}

// Wait blocks until a matching message was delivered or the context ends.
func (l *Listener) Wait(ctx context.Context) (Message, error) {
	select {
	case msg := <-l.result:
		return msg, nil
	case <-ctx.Done():
		return Message{}, errors.Wrap(ctx.Err(), "[Listener.Wait]")
	}
}
