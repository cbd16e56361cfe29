// Package journal stores the dated growth entries of one child in a local
// JSON file.
package journal

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	// ErrEmptyEntry is returned for entries without a date or any measurement.
	ErrEmptyEntry = errors.New("entry needs a date and at least one measurement")
	// ErrNegativeValue is returned when a measurement is below zero or not finite.
	ErrNegativeValue = errors.New("measurements must not be negative")
)

type File struct {
	entries  []Entry
	mu       *sync.RWMutex
	filepath string
}

type rawFile struct {
	Entries []Entry `json:"entries"`
}

func NewFile(path string) (*File, error) {
	f := &File{
		filepath: path,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromEntries creates a journal that is not backed by any file until
// Save is called with a non-empty path.
func NewFileFromEntries(entries []Entry, path string) *File {
	f := &File{
		entries:  append([]Entry(nil), entries...),
		mu:       &sync.RWMutex{},
		filepath: path,
	}
	f.sort()
	return f
}

// List returns a copy of all entries ordered by date.
func (f *File) List() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]Entry(nil), f.entries...)
}

func (f *File) Get(id string) (Entry, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, pkgerrors.Wrapf(ErrEntryNotFound, "id %s", id)
}

// Add validates e, assigns an ID if it has none and inserts it in date order.
func (f *File) Add(e Entry) (Entry, error) {
	if err := validate(e); err != nil {
		return Entry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.entries {
		if existing.ID == e.ID {
			return Entry{}, pkgerrors.Errorf("entry %s already exists", e.ID)
		}
	}
	f.entries = append(f.entries, e)
	f.sort()

	return e, nil
}

func (f *File) Remove(id string) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return e, nil
		}
	}
	return Entry{}, pkgerrors.Wrapf(ErrEntryNotFound, "id %s", id)
}

// Last returns the most recent entry.
func (f *File) Last() (Entry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.entries) == 0 {
		return Entry{}, false
	}
	return f.entries[len(f.entries)-1], true
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// A journal that was never saved is simply empty.
			f.entries = nil
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.entries = nil
		return nil
	}

	raw := rawFile{}
	err = json.Unmarshal(b, &raw)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal journal from file %s", f.filepath)
	}
	f.entries = raw.Entries
	f.sort()

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.filepath == "" {
		return pkgerrors.New("journal has no file path")
	}

	if err := os.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create directory for %s", f.filepath)
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	entries := f.entries
	if entries == nil {
		entries = []Entry{}
	}

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(rawFile{Entries: entries})
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode journal to file %s", f.filepath)
	}

	return nil
}

// sort must be called with the write lock held.
func (f *File) sort() {
	sort.SliceStable(f.entries, func(i, j int) bool {
		return f.entries[i].Date.Before(f.entries[j].Date)
	})
}

func validate(e Entry) error {
	if e.Date.IsZero() {
		return ErrEmptyEntry
	}
	for _, v := range []float64{e.WeightKg, e.HeightCm, e.HeadCircumferenceCm} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNegativeValue
		}
	}
	if e.WeightKg == 0 && e.HeightCm == 0 && e.HeadCircumferenceCm == 0 {
		return ErrEmptyEntry
	}
	return nil
}
