package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/discontent/discontent/pkg/annotate"
)

var (
	ErrInvalidIcon   = errors.New("Icon must be a single character")
	ErrInvalidUserID = errors.New("User ID must be a valid UUID")
	ErrUnknownKey    = errors.New("unknown icon key")
)

const (
	KeyGood          = "good"
	KeyControversial = "controversial"
	KeyBad           = "bad"
	KeyUserID        = "user_id"
)

// IconKeys lists the icon keys in display order.
var IconKeys = []string{KeyGood, KeyControversial, KeyBad}

// DefaultIcons are used when nothing valid is stored.
var DefaultIcons = annotate.Icons{Good: "💚", Controversial: "🤨", Bad: "💢"}

// Store is the persistent key-value store backing the settings.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// IsValidIcon reports whether icon is exactly one code point.
func IsValidIcon(icon string) bool {
	return utf8.ValidString(icon) && utf8.RuneCountInString(icon) == 1
}

// IsValidUserID reports whether id is a UUID in the canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func IsValidUserID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func defaultIcon(key string) (string, error) {
	switch key {
	case KeyGood:
		return DefaultIcons.Good, nil
	case KeyControversial:
		return DefaultIcons.Controversial, nil
	case KeyBad:
		return DefaultIcons.Bad, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// GetIcon returns the stored icon for key. A missing or invalid stored
// value is replaced by the default, which is written back.
func GetIcon(ctx context.Context, s Store, key string) (string, error) {
	def, err := defaultIcon(key)
	if err != nil {
		return "", err
	}
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if ok && IsValidIcon(v) {
		return v, nil
	}
	if err := s.Set(ctx, key, def); err != nil {
		return "", err
	}
	return def, nil
}

// SetIcon validates icon before anything is written.
func SetIcon(ctx context.Context, s Store, key, icon string) error {
	if _, err := defaultIcon(key); err != nil {
		return err
	}
	if !IsValidIcon(icon) {
		return ErrInvalidIcon
	}
	return s.Set(ctx, key, icon)
}

// ResetIcons writes the default icons back.
func ResetIcons(ctx context.Context, s Store) error {
	for _, key := range IconKeys {
		def, _ := defaultIcon(key)
		if err := s.Set(ctx, key, def); err != nil {
			return err
		}
	}
	return nil
}

// GetIcons reads all three icons.
func GetIcons(ctx context.Context, s Store) (annotate.Icons, error) {
	var icons annotate.Icons
	var err error
	if icons.Good, err = GetIcon(ctx, s, KeyGood); err != nil {
		return icons, err
	}
	if icons.Controversial, err = GetIcon(ctx, s, KeyControversial); err != nil {
		return icons, err
	}
	if icons.Bad, err = GetIcon(ctx, s, KeyBad); err != nil {
		return icons, err
	}
	return icons, nil
}

// GetUserID returns the stored user id, generating and saving a random one
// when none is stored or the stored value is not a UUID.
func GetUserID(ctx context.Context, s Store) (string, error) {
	v, ok, err := s.Get(ctx, KeyUserID)
	if err != nil {
		return "", err
	}
	if ok && IsValidUserID(v) {
		return v, nil
	}
	id := uuid.NewString()
	if err := s.Set(ctx, KeyUserID, id); err != nil {
		return "", err
	}
	return id, nil
}

// SetUserID validates id before anything is written.
func SetUserID(ctx context.Context, s Store, id string) error {
	if !IsValidUserID(id) {
		return ErrInvalidUserID
	}
	return s.Set(ctx, KeyUserID, id)
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
