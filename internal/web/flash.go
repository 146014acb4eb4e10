package web

import (
	"net/http"
	"strings"

	"printshop/internal/logger"

	"github.com/gorilla/sessions"
)

const flashSession = "printshop_flash"

// Flash is one message queued for the next rendered page
type Flash struct {
	Kind    string // "info" or "error"
	Message string
}

// FlashStore keeps flash messages in a signed cookie between a redirect and the next page.
type FlashStore struct {
	store *sessions.CookieStore
}

func NewFlashStore(secret string, secure bool) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, kind, message string) {
	// a tampered or stale cookie yields a fresh session alongside the error
	session, _ := f.store.Get(r, flashSession)
	session.AddFlash(kind + "|" + message)
	if err := session.Save(r, w); err != nil {
		logger.Error().Err(err).Msg("Failed to save flash message")
	}
}

// Pop returns and clears pending messages
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	session, _ := f.store.Get(r, flashSession)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		logger.Error().Err(err).Msg("Failed to clear flash messages")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = "info", s
		}
		flashes = append(flashes, Flash{Kind: kind, Message: msg})
	}
	return flashes
}
