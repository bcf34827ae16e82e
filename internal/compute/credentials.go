package compute

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2/google"
	compute "google.golang.org/api/compute/v1"

	"github.com/celestiaorg/vmbot/internal/config"
)

// CredentialScope is the only permission the bot asks for
const CredentialScope = compute.ComputeScope

// credentialJSON renders the key in the service account key file format
func credentialJSON(key config.ServiceAccountKey) ([]byte, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account key: %w", err)
	}
	return data, nil
}

// NewServiceCredential builds a credential scoped to compute management from
// the static key material. Callers create one per call and drop it afterwards.
func NewServiceCredential(ctx context.Context, key config.ServiceAccountKey) (*google.Credentials, error) {
	data, err := credentialJSON(key)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, data, CredentialScope)
	if err != nil {
		return nil, fmt.Errorf("failed to build service credential: %w", err)
	}
	return creds, nil
}
