// Package secrets resolves credential material from AWS Secrets Manager or
// the local filesystem.
package secrets

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// Resolve returns a secret value. When secretName is set, the value comes
// from Secrets Manager (cached client); otherwise it is read from filePath.
func Resolve(secretName string, filePath string) (string, error) {
	if secretName != "" {
		cache, err := secretcache.New()
		if err != nil {
			return "", fmt.Errorf("secrets manager init: %w", err)
		}
		value, err := cache.GetSecretString(secretName)
		if err != nil {
			return "", fmt.Errorf("secrets manager read %q: %w", secretName, err)
		}
		return strings.TrimSpace(value), nil
	}

	if filePath == "" {
		return "", fmt.Errorf("no secret name or file path given")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
