// Package chatbot answers help questions from a fixed keyword knowledge base.
package chatbot

import (
	"strings"
	"sync"
)

type Intent struct {
	ID       string   `json:"id"`
	Patterns []string `json:"patterns"`
	Reply    string   `json:"reply"`
}

type Response struct {
	Reply     string `json:"reply"`
	IntentID  string `json:"intentId"`
	Forbidden bool   `json:"forbidden"`
}

// Bot is safe for concurrent use. Intents are matched in order.
type Bot struct {
	mu      sync.RWMutex
	intents []Intent
}

func New() *Bot {
	return &Bot{intents: defaultIntents()}
}

// Respond picks the reply for text: the admin guard first, then a substring
// match over every intent's patterns, then a whole-word match, then unknown.
func (b *Bot) Respond(text string) Response {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if text == "" {
		return b.unknown()
	}

	t := strings.ToLower(text)

	for _, k := range adminKeywords {
		if strings.Contains(t, k) {
			return Response{Reply: ForbiddenReply, IntentID: ForbiddenID, Forbidden: true}
		}
	}

	for _, intent := range b.intents {
		for _, p := range intent.Patterns {
			if strings.Contains(t, p) {
				return Response{Reply: intent.Reply, IntentID: intent.ID}
			}
		}
	}

	tokens := strings.Fields(t)
	for _, intent := range b.intents {
		for _, p := range intent.Patterns {
			for _, tok := range tokens {
				if tok == p {
					return Response{Reply: intent.Reply, IntentID: intent.ID}
				}
			}
		}
	}

	return b.unknown()
}

func (b *Bot) unknown() Response {
	for _, intent := range b.intents {
		if intent.ID == UnknownID {
			return Response{Reply: intent.Reply, IntentID: UnknownID}
		}
	}
	return Response{Reply: unknownReplyText, IntentID: UnknownID}
}

// AddIntent replaces the intent with the same id, or appends it.
func (b *Bot) AddIntent(intent Intent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.intents {
		if b.intents[i].ID == intent.ID {
			b.intents[i] = intent
			return
		}
	}
	b.intents = append(b.intents, intent)
}

func (b *Bot) Intents() []Intent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Intent(nil), b.intents...)
}
