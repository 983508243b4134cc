package main

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"thunder/kernel/gate"
)

var (
	errNoBindings       = errors.New("no trampolines defined")
	errBadPackage       = errors.New("package name is not a valid identifier")
	errUnknownKeys      = errors.New("unknown configuration keys")
	errVectorRange      = errors.New("vector number out of range")
	errReservedVector   = errors.New("vector is reserved")
	errDuplicateVector  = errors.New("vector bound more than once")
	errBadIdentifier    = errors.New("not a valid Go identifier")
	errDuplicateSymbol  = errors.New("symbol used more than once")
	errEntryIsHandler   = errors.New("handler refers to a generated entry point")
	errExportedSymbol   = errors.New("symbols must be unexported")
	errAddrOfCollision  = errors.New("entry name collides with a generated helper")
	errMissingSymbolDef = errors.New("handler and entry are required")
	errFPStateOnNM      = errors.New("the device-not-available trampoline cannot save the FPU state")
)

// binding ties an exception vector to the Go handler invoked by its
// trampoline.
type binding struct {
	// Vector is the exception vector number.
	Vector int `toml:"vector"`

	// Handler is the Go function called by the trampoline. Its signature
	// must match the trampoline variant of Vector.
	Handler string `toml:"handler"`

	// Entry is the name of the generated assembly entry point.
	Entry string `toml:"entry"`

	// FPState makes the trampoline save the x87/SSE state before calling
	// Handler and restore it afterwards. Handlers that resume the
	// interrupted code need it.
	FPState bool `toml:"fpstate"`
}

// variant returns the trampoline shape required by the bound vector.
func (b binding) variant() gate.TrampolineVariant {
	return gate.InterruptNumber(b.Vector).Trampoline()
}

// addrOf returns the name of the helper that reports the entry point address.
func (b binding) addrOf() string {
	return "addrOf" + strings.ToUpper(b.Entry[:1]) + b.Entry[1:]
}

// config is the contents of a trampoline definition file.
type config struct {
	// Package is the Go package the generated files belong to.
	Package string `toml:"package"`

	Bindings []binding `toml:"trampoline"`
}

// loadConfig reads and validates the trampoline definitions stored at path.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := parseConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig decodes and validates trampoline definitions. On success the
// bindings are sorted by vector number.
func parseConfig(data string) (*config, error) {
	var cfg config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%w: %s", errUnknownKeys, strings.Join(keys, ", "))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sort.Slice(cfg.Bindings, func(i, j int) bool {
		return cfg.Bindings[i].Vector < cfg.Bindings[j].Vector
	})
	return &cfg, nil
}

// validate checks the bindings against the architectural vector map.
func (cfg *config) validate() error {
	if !token.IsIdentifier(cfg.Package) {
		return fmt.Errorf("%w: %q", errBadPackage, cfg.Package)
	}

	if len(cfg.Bindings) == 0 {
		return errNoBindings
	}

	var (
		seenVector [gate.NumVectors]bool
		seenSymbol = make(map[string]bool)
	)

	for i, b := range cfg.Bindings {
		if b.Vector < 0 || b.Vector >= gate.NumVectors {
			return fmt.Errorf("trampoline %d: %w: %d", i, errVectorRange, b.Vector)
		}

		if gate.Vectors[b.Vector].Reserved {
			return fmt.Errorf("trampoline %d: %w: %d", i, errReservedVector, b.Vector)
		}

		if seenVector[b.Vector] {
			return fmt.Errorf("trampoline %d: %w: %d", i, errDuplicateVector, b.Vector)
		}
		seenVector[b.Vector] = true

		// FXSAVE64 raises #NM itself while CR0.TS is set.
		if b.FPState && gate.InterruptNumber(b.Vector) == gate.DeviceNotAvailable {
			return fmt.Errorf("trampoline %d: %w", i, errFPStateOnNM)
		}

		if b.Handler == "" || b.Entry == "" {
			return fmt.Errorf("trampoline %d: %w", i, errMissingSymbolDef)
		}

		for _, sym := range []string{b.Handler, b.Entry} {
			if !token.IsIdentifier(sym) {
				return fmt.Errorf("trampoline %d: %w: %q", i, errBadIdentifier, sym)
			}

			if token.IsExported(sym) {
				return fmt.Errorf("trampoline %d: %w: %q", i, errExportedSymbol, sym)
			}
		}

		if seenSymbol[b.Entry] {
			return fmt.Errorf("trampoline %d: %w: %q", i, errDuplicateSymbol, b.Entry)
		}
		seenSymbol[b.Entry] = true
	}

	// Generated helpers share the namespace of the target package.
	for i, b := range cfg.Bindings {
		if seenSymbol[b.Handler] {
			return fmt.Errorf("trampoline %d: %w: %q", i, errEntryIsHandler, b.Handler)
		}

		if seenSymbol[b.addrOf()] || b.Handler == b.addrOf() {
			return fmt.Errorf("trampoline %d: %w: %q", i, errAddrOfCollision, b.addrOf())
		}
	}

	return nil
}
