package core

import (
	"slices"
	"sync"
)

const DefaultCurrencySymbol = "$"

// Settings is an immutable snapshot of the display preferences.
type Settings struct {
	DateFormat     DateFormat
	CurrencySymbol string
}

// DefaultSettings returns the preferences a fresh process starts with.
func DefaultSettings() Settings {
	return Settings{
		DateFormat:     DateFormatISO,
		CurrencySymbol: DefaultCurrencySymbol,
	}
}

// Preferences holds the display settings for the lifetime of the process.
// They are never persisted. Components receive a *Preferences and read a
// snapshot at call time.
type Preferences struct {
	mu          sync.RWMutex
	current     Settings
	subscribers []func(Settings)
}

// NewPreferences validates initial and returns preferences holding it.
func NewPreferences(initial Settings) (*Preferences, error) {
	if _, err := ParseDateFormat(string(initial.DateFormat)); err != nil {
		return nil, &FieldError{Field: FieldDateFormat, Err: err}
	}
	return &Preferences{current: initial}, nil
}

// Settings returns the current snapshot.
func (p *Preferences) Settings() Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Subscribe registers fn to be called with the new snapshot after every
// successful Update.
func (p *Preferences) Subscribe(fn func(Settings)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Update replaces both fields in one step. An unknown format id is rejected
// and leaves the settings untouched; the currency symbol is taken as is,
// including the empty string.
func (p *Preferences) Update(formatID, currencySymbol string) (Settings, error) {
	format, err := ParseDateFormat(formatID)
	if err != nil {
		return p.Settings(), &FieldError{Field: FieldDateFormat, Err: err}
	}

	next := Settings{DateFormat: format, CurrencySymbol: currencySymbol}

	p.mu.Lock()
	p.current = next
	subs := slices.Clone(p.subscribers)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}
