package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/utils/ptr"
)

// DateLayout is the on-disk and wire format of the birth date.
const DateLayout = time.DateOnly

var (
	defaultFileConfig = &RawFileConfig{
		BabyName:           ptr.To(""),
		BirthDate:          ptr.To(""),
		Sex:                ptr.To(string(growth.Female)),
		UseMetric:          ptr.To(true),
		AllowNonRootAccess: ptr.To(false),
		ReminderCron:       ptr.To(""),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	BabyName           *string `json:"babyName,omitempty" yaml:"babyName,omitempty"`
	BirthDate          *string `json:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	Sex                *string `json:"sex,omitempty" yaml:"sex,omitempty"`
	UseMetric          *bool   `json:"useMetric,omitempty" yaml:"useMetric,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty" yaml:"allowNonRootAccess,omitempty"`
	ReminderCron       *string `json:"reminderCron,omitempty" yaml:"reminderCron,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	birth := ""
	if t := c.BirthDate(); !t.IsZero() {
		birth = t.Format(DateLayout)
	}

	rawConfig := &RawFileConfig{
		BabyName:           ptr.To(c.BabyName()),
		BirthDate:          ptr.To(birth),
		Sex:                ptr.To(string(c.Sex())),
		UseMetric:          ptr.To(c.UseMetric()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
		ReminderCron:       ptr.To(c.ReminderCron()),
	}

	return rawConfig, nil
}

// Validate checks the fields that have a restricted format.
func (r *RawFileConfig) Validate() error {
	if r.Sex != nil && *r.Sex != "" {
		if _, err := growth.ParseSex(*r.Sex); err != nil {
			return err
		}
	}
	if r.BirthDate != nil && *r.BirthDate != "" {
		if _, err := time.Parse(DateLayout, *r.BirthDate); err != nil {
			return pkgerrors.Wrapf(err, "invalid birth date %q", *r.BirthDate)
		}
	}
	return nil
}

func (f *File) BabyName() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.BabyName != nil {
		return *f.c.BabyName
	}
	return *defaultFileConfig.BabyName
}

func (f *File) BirthDate() time.Time {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	raw := *defaultFileConfig.BirthDate
	if f.c.BirthDate != nil {
		raw = *f.c.BirthDate
	}
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		// Load validates the date, so this only happens for configs built in memory.
		logrus.Warnf("ignoring invalid birth date %q: %v", raw, err)
		return time.Time{}
	}
	return t
}

func (f *File) Sex() growth.Sex {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	raw := *defaultFileConfig.Sex
	if f.c.Sex != nil && *f.c.Sex != "" {
		raw = *f.c.Sex
	}

	sex, err := growth.ParseSex(raw)
	if err != nil {
		return growth.Sex(*defaultFileConfig.Sex)
	}
	return sex
}

func (f *File) UseMetric() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var useMetric bool

	if f.c.UseMetric != nil {
		useMetric = *f.c.UseMetric
	} else {
		useMetric = *defaultFileConfig.UseMetric
	}

	return useMetric
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var allowNonRootAccess bool

	if f.c.AllowNonRootAccess != nil {
		allowNonRootAccess = *f.c.AllowNonRootAccess
	} else {
		allowNonRootAccess = *defaultFileConfig.AllowNonRootAccess
	}

	return allowNonRootAccess
}

func (f *File) ReminderCron() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ReminderCron != nil {
		return *f.c.ReminderCron
	}
	return *defaultFileConfig.ReminderCron
}

func (f *File) SetBabyName(name string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.BabyName = &name
}

// SetBirthDate stores only the calendar date; a zero time clears it.
func (f *File) SetBirthDate(t time.Time) {
	if f.c == nil {
		panic("config is nil")
	}

	raw := ""
	if !t.IsZero() {
		raw = t.Format(DateLayout)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.BirthDate = &raw
}

func (f *File) SetSex(s growth.Sex) {
	if f.c == nil {
		panic("config is nil")
	}

	if !s.Valid() {
		panic("sex must be male or female")
	}

	raw := string(s)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Sex = &raw
}

func (f *File) SetUseMetric(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.UseMetric = &b
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

func (f *File) SetReminderCron(expr string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.ReminderCron = &expr
}

func (f *File) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(f.filepath))
	return ext == ".yaml" || ext == ".yml"
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
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

	// Since we want to tell if the file is empty, using a decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if f.isYAML() {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	if err := conf.Validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
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

	if f.isYAML() {
		enc := yaml.NewEncoder(fp)
		enc.SetIndent(2)
		err = enc.Encode(f.c)
		if err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(fp)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	birth := "unset"
	if t := f.BirthDate(); !t.IsZero() {
		birth = t.Format(DateLayout)
	}

	return logrus.Fields{
		"babyName":           f.BabyName(),
		"birthDate":          birth,
		"sex":                f.Sex(),
		"useMetric":          f.UseMetric(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
		"reminderCron":       f.ReminderCron(),
	}
}
