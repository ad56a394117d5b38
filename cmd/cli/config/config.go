package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "SCHOOLBOARD_API_URL"
	envUserFile   = "SCHOOLBOARD_USER_FILE"
	userFileName  = ".schoolboard_user"
)

// ErrNotLoggedIn is returned by LoadUser when no username has been saved.
var ErrNotLoggedIn = errors.New("not logged in; run `schoolboard login` first")

// APIURL returns the base URL for the announcement API.
// It can be overridden with the SCHOOLBOARD_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv(envAPIURL); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// userPath is ~/.schoolboard_user unless SCHOOLBOARD_USER_FILE is set.
func userPath() string {
	if v := os.Getenv(envUserFile); v != "" {
		return v
	}
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, userFileName)
}

// SaveUser stores the logged-in username for later commands.
func SaveUser(username string) error {
	return os.WriteFile(userPath(), []byte(username), 0600)
}

// LoadUser returns the saved username.
func LoadUser() (string, error) {
	data, err := os.ReadFile(userPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	u := strings.TrimSpace(string(data))
	if u == "" {
		return "", ErrNotLoggedIn
	}
	return u, nil
}

// ClearUser removes the saved username. It reports whether one was stored.
func ClearUser() (bool, error) {
	err := os.Remove(userPath())
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
