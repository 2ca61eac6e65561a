// Package gcp holds the Google Drive and Google Sheets transports used by the
// dashboard. Clients are built once at startup and handed to the stores.
package gcp

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account.
var Scopes = []string{drive.DriveReadonlyScope, sheets.SpreadsheetsScope}

// Clients bundles the API services that share one credential.
type Clients struct {
	Drive  *drive.Service
	Sheets *sheets.Service
}

// WithServiceAccount returns the client option for a service-account JSON key.
func WithServiceAccount(credentialsJSON []byte) (option.ClientOption, error) {
	if len(credentialsJSON) == 0 {
		return nil, errors.New("gcp: empty service account credentials")
	}
	return option.WithCredentialsJSON(credentialsJSON), nil
}

// NewClients builds the Drive and Sheets services.
func NewClients(ctx context.Context, opts ...option.ClientOption) (*Clients, error) {
	opts = append([]option.ClientOption{option.WithScopes(Scopes...)}, opts...)

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Clients{Drive: driveSvc, Sheets: sheetsSvc}, nil
}
