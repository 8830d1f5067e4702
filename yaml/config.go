// Package yaml loads source descriptors and user configuration from YAML.
package yaml

import (
	_ "embed"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/clanko"
	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var builtinSources string

// DefaultSources returns the built-in source descriptors.
func DefaultSources() ([]*clanko.Source, error) {
	return ParseSources(strings.NewReader(builtinSources))
}

type sourcesFile struct {
	Sources []sourceFile `yaml:"sources"`
}

type sourceFile struct {
	Name    string            `yaml:"name"`
	Domains []string          `yaml:"domains"`
	Login   *loginFile        `yaml:"login"`
	Fields  []fieldFile       `yaml:"fields"`
	Exclude []string          `yaml:"exclude"`
	Rules   map[string]string `yaml:"rules"`
}

type loginFile struct {
	PageURL       string `yaml:"page_url"`
	ActionURL     string `yaml:"action_url"`
	TokenField    string `yaml:"token_field"`
	UsernameField string `yaml:"username_field"`
	PasswordField string `yaml:"password_field"`
}

type fieldFile struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
	Mode     string `yaml:"mode"`
	Required bool   `yaml:"required"`
	Prefix   string `yaml:"prefix"`
}

type credentialsFile struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ParseSources decodes a "sources:" document and validates every entry.
// An empty document yields no sources.
func ParseSources(r io.Reader) ([]*clanko.Source, error) {
	var file sourcesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, clanko.Errorf(clanko.EINVALID, "failed to parse sources: %v", err)
	}
	return toSources(file.Sources)
}

func toSources(files []sourceFile) ([]*clanko.Source, error) {
	sources := make([]*clanko.Source, 0, len(files))
	for _, f := range files {
		src := f.toSource()
		if err := src.Validate(); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (f sourceFile) toSource() *clanko.Source {
	src := &clanko.Source{
		Name:           f.Name,
		AllowedDomains: f.Domains,
		Exclude:        f.Exclude,
	}
	if f.Login != nil {
		src.Login = &clanko.Login{
			PageURL:       f.Login.PageURL,
			ActionURL:     f.Login.ActionURL,
			TokenField:    f.Login.TokenField,
			UsernameField: f.Login.UsernameField,
			PasswordField: f.Login.PasswordField,
		}
	}
	for _, field := range f.Fields {
		src.Fields = append(src.Fields, clanko.FieldSpec{
			Name:     field.Name,
			Selector: field.Selector,
			Mode:     clanko.FieldMode(field.Mode),
			Required: field.Required,
			Prefix:   field.Prefix,
		})
	}
	if len(f.Rules) > 0 {
		src.Rules = make(map[string]clanko.RenderRule, len(f.Rules))
		for tag, rule := range f.Rules {
			src.Rules[tag] = clanko.RenderRule(rule)
		}
	}
	return src
}

// Config is the user's configuration file.
//
//	credentials:
//	  trend:
//	    username: ${TREND_USERNAME}
//	    password: ${TREND_PASSWORD}
//	user_agent: Mozilla/5.0
//	sources: []   # extra descriptors, same shape as the built-in ones
type Config struct {
	Credentials map[string]clanko.Credentials
	UserAgent   string
	Sources     []*clanko.Source
}

type configFile struct {
	Credentials map[string]credentialsFile `yaml:"credentials"`
	UserAgent   string                     `yaml:"user_agent"`
	Sources     []sourceFile               `yaml:"sources"`
}

// LoadConfig reads the config file at path, expanding ${VAR} references from
// the environment. A missing file yields an empty Config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	} else if err != nil {
		return nil, clanko.Errorf(clanko.EINVALID, "failed to read config file %s: %v", path, err)
	}
	return ParseConfig(strings.NewReader(expandEnv(string(data))))
}

// envRef matches ${NAME}. A bare $ is left alone so passwords keep it.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// ParseConfig decodes a config document. Environment expansion is the
// caller's job.
func ParseConfig(r io.Reader) (*Config, error) {
	var file configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, clanko.Errorf(clanko.EINVALID, "failed to parse config: %v", err)
	}

	sources, err := toSources(file.Sources)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Credentials: make(map[string]clanko.Credentials, len(file.Credentials)),
		UserAgent:   file.UserAgent,
		Sources:     sources,
	}
	for name, c := range file.Credentials {
		cfg.Credentials[name] = clanko.Credentials{Username: c.Username, Password: c.Password}
	}
	return cfg, nil
}

// Apply appends the config's extra sources to sources and fills in
// credentials by source name. Credentials for an unknown source are an error.
func (c *Config) Apply(sources []*clanko.Source) ([]*clanko.Source, error) {
	all := make([]*clanko.Source, 0, len(sources)+len(c.Sources))
	all = append(all, sources...)
	all = append(all, c.Sources...)

	byName := make(map[string]*clanko.Source, len(all))
	for _, src := range all {
		byName[src.Name] = src
	}
	for name, creds := range c.Credentials {
		src, ok := byName[name]
		if !ok {
			return nil, clanko.Errorf(clanko.EINVALID, "credentials given for unknown source %q", name)
		}
		src.Credentials = creds
	}
	return all, nil
}
