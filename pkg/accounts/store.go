package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry file for account-picker.
// Stores account metadata and the active account id as JSON:
//
//   ~/.config/account-picker/accounts.json
//
// Secrets are never written here. API keys are reduced to a masked preview
// before they reach the registry.

const registryVersion = 1

// registryFile is the on-disk JSON structure.
// Keep fields stable for backward compatibility.
type registryFile struct {
	Version  int            `json:"version,omitempty"`
	Active   string         `json:"active,omitempty"`
	Accounts []accountEntry `json:"accounts,omitempty"`

	// Updated tracks the last update time in RFC3339.
	Updated string `json:"updated,omitempty"`
}

type accountEntry struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Kind         Kind   `json:"kind"`
	Email        string `json:"email,omitempty"`
	MaskedAPIKey string `json:"masked_api_key,omitempty"`
	Created      string `json:"created,omitempty"`
}

// NewAccount describes an account to register.
// APIKey is only used to derive the masked preview.
type NewAccount struct {
	Label  string
	Kind   Kind
	Email  string
	APIKey string
}

// FileDirectory is a Directory backed by a JSON registry file.
// It is safe for concurrent use within one process.
type FileDirectory struct {
	mu   sync.Mutex
	path string
}

// NewFileDirectory returns a directory persisted at path.
// The file does not need to exist yet.
func NewFileDirectory(path string) (*FileDirectory, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("accounts: empty registry path")
	}
	return &FileDirectory{path: path}, nil
}

// Path returns the registry file location.
func (d *FileDirectory) Path() string { return d.path }

// ListAccounts returns the registered accounts in insertion order.
func (d *FileDirectory) ListAccounts() ([]Summary, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rf, err := d.load()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(rf.Accounts))
	for _, e := range rf.Accounts {
		out = append(out, Summary{
			ID:           e.ID,
			Label:        e.Label,
			Kind:         e.Kind,
			Email:        e.Email,
			MaskedAPIKey: e.MaskedAPIKey,
			IsActive:     e.ID == rf.Active,
		})
	}
	return out, nil
}

// ActivateAccount marks id as the active account.
func (d *FileDirectory) ActivateAccount(id string) error {
	id = strings.TrimSpace(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	rf, err := d.load()
	if err != nil {
		return err
	}
	if rf.find(id) < 0 {
		return fmt.Errorf("activate %q: %w", id, ErrAccountNotFound)
	}
	if rf.Active == id {
		return nil
	}
	rf.Active = id
	return d.save(rf)
}

// Add registers a new account and returns its summary.
func (d *FileDirectory) Add(na NewAccount) (Summary, error) {
	label := strings.TrimSpace(na.Label)
	if label == "" {
		return Summary{}, fmt.Errorf("%w: label is required", ErrInvalidAccount)
	}
	entry := accountEntry{
		ID:      uuid.NewString(),
		Label:   label,
		Kind:    na.Kind,
		Created: time.Now().UTC().Format(time.RFC3339),
	}
	switch na.Kind {
	case KindChatGPT:
		entry.Email = strings.TrimSpace(na.Email)
	case KindAPIKey:
		entry.MaskedAPIKey = MaskAPIKey(na.APIKey)
	default:
		return Summary{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidAccount, na.Kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	rf, err := d.load()
	if err != nil {
		return Summary{}, err
	}
	rf.Accounts = append(rf.Accounts, entry)
	if err := d.save(rf); err != nil {
		return Summary{}, err
	}
	return Summary{
		ID:           entry.ID,
		Label:        entry.Label,
		Kind:         entry.Kind,
		Email:        entry.Email,
		MaskedAPIKey: entry.MaskedAPIKey,
		IsActive:     entry.ID == rf.Active,
	}, nil
}

// Remove deletes an account. Removing the active account leaves no account active.
func (d *FileDirectory) Remove(id string) error {
	id = strings.TrimSpace(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	rf, err := d.load()
	if err != nil {
		return err
	}
	i := rf.find(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrAccountNotFound)
	}
	rf.Accounts = append(rf.Accounts[:i], rf.Accounts[i+1:]...)
	if rf.Active == id {
		rf.Active = ""
	}
	return d.save(rf)
}

func (rf *registryFile) find(id string) int {
	if id == "" {
		return -1
	}
	for i := range rf.Accounts {
		if rf.Accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// load reads the registry. A missing file is an empty registry.
func (d *FileDirectory) load() (*registryFile, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &registryFile{Version: registryVersion}, nil
		}
		return nil, fmt.Errorf("read accounts %s: %w", d.path, err)
	}

	var rf registryFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse accounts %s: %w", d.path, err)
	}
	if rf.Version == 0 {
		rf.Version = registryVersion
	}
	rf.dropInvalid()
	return &rf, nil
}

// save writes the registry atomically, creating the parent directory with 0700.
func (d *FileDirectory) save(rf *registryFile) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create accounts dir %s: %w", dir, err)
	}

	rf2 := *rf
	rf2.Updated = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.MarshalIndent(rf2, "", "  ")
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	payload = append(payload, '\n')

	tmp := d.path + fmt.Sprintf(".tmp-%d-%d", os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write temp accounts %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename to %s: %w", d.path, err)
	}
	return nil
}

// dropInvalid removes entries without an id, duplicate ids, and a dangling active marker.
func (rf *registryFile) dropInvalid() {
	if len(rf.Accounts) > 0 {
		seen := map[string]struct{}{}
		out := rf.Accounts[:0]
		for _, e := range rf.Accounts {
			e.ID = strings.TrimSpace(e.ID)
			if e.ID == "" {
				continue
			}
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e)
		}
		rf.Accounts = out
	}
	if rf.find(rf.Active) < 0 {
		rf.Active = ""
	}
}
