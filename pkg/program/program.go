// Package program describes a Turing machine as data: the configuration a caller would
// otherwise apply call by call. Programs are written as YAML files, decoded from loosely
// typed payloads (HTTP, MCP) and kept in program stores.
//
// A program never carries runtime state such as the tape or the current state.
package program

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/notation"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Program is the declarative configuration of a machine.
// Empty fields fall back to the machine defaults at build time.
type Program struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Blank       string   `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`
	Initial     string   `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
	Accepting   []string `json:"accepting,omitempty" yaml:"accepting,omitempty" mapstructure:"accepting"`
	Input       string   `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`
	Transitions []string `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Target is the configuration surface a program is applied to.
type Target interface {
	AddTransition(t domain.Transition) (bool, error)
	SetAcceptingStates(states ...domain.State) error
	AddInitialState(s domain.State) (bool, error)
	SetBlankSymbol(b domain.BlankSymbol) error
	SetInput(input string) error
}

// Parse reads a YAML program. Unknown fields are rejected.
func Parse(data []byte) (*Program, error) {
	var p Program
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads and validates a YAML program from disk.
// The file name (without extension) is used when the program has no name.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = baseName(path)
	}
	return p, nil
}

// Decode builds a program from a loosely typed map such as a decoded JSON body.
// Scalars are converted to strings, so numeric symbols like 0 and 1 are accepted,
// and a single accepting state may be given without a list.
func Decode(raw map[string]any) (*Program, error) {
	var p Program
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &p,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal renders the program as YAML.
func (p *Program) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	c := *p
	c.Accepting = append([]string(nil), p.Accepting...)
	c.Transitions = append([]string(nil), p.Transitions...)
	return &c
}

// Validate checks every field and reports all problems at once.
func (p *Program) Validate() error {
	var errs []error

	if strings.ContainsAny(p.Name, " \t\n/") {
		errs = append(errs, &ValidationError{Key: "name", Reason: "must not contain whitespace or slashes"})
	}
	if len([]rune(p.Blank)) > 1 {
		errs = append(errs, &ValidationError{Key: "blank", Reason: "must be a single character"})
	}
	if strings.ContainsAny(p.Initial, " \t,()") {
		errs = append(errs, &ValidationError{Key: "initial", Reason: "must be a single state name"})
	}
	for i, s := range p.Accepting {
		if s == "" || strings.ContainsAny(s, " \t,()") {
			errs = append(errs, &ValidationError{Key: fmt.Sprintf("accepting[%d]", i), Reason: "must be a single state name"})
		}
	}

	seen := make(map[domain.Configuration]int)
	for i, text := range p.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		t, err := notation.ParseTransition(text)
		if err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: "invalid transition", Err: err})
			continue
		}
		if first, dup := seen[t.Configuration()]; dup {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: fmt.Sprintf("same configuration as transitions[%d]", first),
				Err:    ErrDuplicateTransition,
			})
			continue
		}
		seen[t.Configuration()] = i
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Apply configures target with the program. Target must be modifiable.
func (p *Program) Apply(target Target) error {
	if p.Blank != "" {
		if err := target.SetBlankSymbol(domain.BlankSymbol(p.Blank)); err != nil {
			return err
		}
	}
	if p.Initial != "" {
		if _, err := target.AddInitialState(domain.State(p.Initial)); err != nil {
			return err
		}
	}
	if len(p.Accepting) > 0 {
		states := make([]domain.State, 0, len(p.Accepting))
		for _, s := range p.Accepting {
			states = append(states, domain.State(s))
		}
		if err := target.SetAcceptingStates(states...); err != nil {
			return err
		}
	}
	if err := target.SetInput(p.Input); err != nil {
		return err
	}

	for _, text := range p.Transitions {
		t, err := notation.ParseTransition(text)
		if err != nil {
			return err
		}
		ok, err := target.AddTransition(t)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTransition, text)
		}
	}
	return nil
}

// FromSnapshot captures the configuration part of a machine snapshot under name.
func FromSnapshot(name string, snap machine.Snapshot) *Program {
	p := &Program{
		Name:        name,
		Blank:       string(snap.Blank),
		Initial:     string(snap.Initial),
		Input:       snap.Input.String(),
		Transitions: make([]string, 0, len(snap.Transitions)),
	}
	for _, s := range snap.Accepting {
		p.Accepting = append(p.Accepting, string(s))
	}
	for _, t := range snap.Transitions {
		p.Transitions = append(p.Transitions, notation.FormatTransition(t))
	}
	return p
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
