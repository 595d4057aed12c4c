// Package auth provides helpdesk API token management.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenEnvVar is the environment variable holding the API token.
const TokenEnvVar = "HDESK_TOKEN"

// TokenProvider defines the interface for obtaining a helpdesk API token.
// Implementations may use different sources (config, environment, files).
type TokenProvider interface {
	GetToken() (string, error)
}

// StaticProvider returns a token that was configured explicitly.
type StaticProvider struct {
	Token string
}

// GetToken returns the configured token or an error if it is empty.
func (s *StaticProvider) GetToken() (string, error) {
	token := strings.TrimSpace(s.Token)
	if token == "" {
		return "", errors.New("no token configured")
	}
	return token, nil
}

// EnvProvider obtains tokens from the HDESK_TOKEN environment variable.
type EnvProvider struct{}

// GetToken reads the HDESK_TOKEN environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(TokenEnvVar))
	if token == "" {
		return "", errors.New(TokenEnvVar + " environment variable not set or empty")
	}
	return token, nil
}

// FileProvider reads the token from a file. An empty Path means
// ~/.config/hdesk/token.
type FileProvider struct {
	Path string
}

// GetToken reads and trims the token file.
func (f *FileProvider) GetToken() (string, error) {
	path := f.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "hdesk", "token")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}

// GetToken attempts to obtain a token using the following strategy:
// 1. The token from configuration, if any
// 2. The HDESK_TOKEN environment variable
// 3. The token file
//
// It returns one error naming every source that was tried.
func GetToken(configured string) (string, error) {
	return Chain(&StaticProvider{Token: configured}, &EnvProvider{}, &FileProvider{})
}

// Chain returns the first token any provider yields.
func Chain(providers ...TokenProvider) (string, error) {
	var errs []error
	for _, p := range providers {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}

	return "", fmt.Errorf(
		"failed to obtain helpdesk token: %w\n"+
			"Please either:\n"+
			"  1. Set token in ~/.config/hdesk/config.yaml, or\n"+
			"  2. Set the %s environment variable, or\n"+
			"  3. Write the token to ~/.config/hdesk/token",
		errors.Join(errs...), TokenEnvVar,
	)
}
