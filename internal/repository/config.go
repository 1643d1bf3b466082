package repository

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rhyn0/oxide-git/internal/constants"
	"github.com/rhyn0/oxide-git/internal/objects"
	"gopkg.in/ini.v1"
	"gopkg.in/src-d/go-billy.v4"
)

// Config holds the settings of .ogit/config.
//
//	[user]
//	name = Jane Doe
//	email = jane@example.com
//	[core]
//	ignorefile = .ogitignore
type Config struct {
	UserName   string
	UserEmail  string
	IgnoreFile string
}

func DefaultConfig() *Config {
	return &Config{
		UserName:   constants.DefaultUserName,
		UserEmail:  constants.DefaultUserEmail,
		IgnoreFile: constants.DefaultIgnoreFile,
	}
}

// LoadConfig reads the config file of the metadata directory fs. Missing
// files and keys fall back to the defaults.
func LoadConfig(fs billy.Basic) (*Config, error) {
	config := DefaultConfig()

	content, err := objects.ReadFile(fs, constants.Config)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, &objects.IOError{Op: "read", Path: constants.Config, Err: err}
	}

	cfg, err := ini.Load(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", constants.Config)
	}

	user := cfg.Section(constants.UserSection)
	config.UserName = nonEmpty(user.Key(constants.UserNameKey).String(), config.UserName)
	config.UserEmail = nonEmpty(user.Key(constants.UserEmailKey).String(), config.UserEmail)
	config.IgnoreFile = nonEmpty(cfg.Section(constants.CoreSection).Key(constants.CoreIgnoreKey).String(), config.IgnoreFile)

	return config, nil
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Save writes the config file into the metadata directory fs.
func (c *Config) Save(fs billy.Filesystem) error {
	cfg := ini.Empty()
	cfg.Section(constants.UserSection).Key(constants.UserNameKey).SetValue(c.UserName)
	cfg.Section(constants.UserSection).Key(constants.UserEmailKey).SetValue(c.UserEmail)
	cfg.Section(constants.CoreSection).Key(constants.CoreIgnoreKey).SetValue(c.IgnoreFile)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return errors.Wrapf(err, "failed to render %s", constants.Config)
	}

	return writeFileAtomic(fs, constants.Config, buf.Bytes(), constants.TempConfigPrefix)
}

// Signature is the configured identity at when.
func (c *Config) Signature(when time.Time) objects.Signature {
	return objects.Signature{
		Name:  c.UserName,
		Email: c.UserEmail,
		When:  when,
	}
}
