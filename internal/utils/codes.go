package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/devboard/devboard/internal/constants"
)

// GenerateCustomLink generates the random path segment for a developer's
// custom access link.
func GenerateCustomLink() (string, error) {
	bytes := make([]byte, constants.CustomLinkBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateDeveloperCode generates a short uppercase verification code.
func GenerateDeveloperCode() (string, error) {
	bytes := make([]byte, constants.DeveloperCodeBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(bytes)), nil
}
