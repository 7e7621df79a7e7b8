// Package firebase implements both upstream interfaces on the Firebase
// Admin SDK: the identity provider on Firebase Authentication and the
// document store on Cloud Firestore.
package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/upstream"
)

// Config holds the Firebase project settings.
type Config struct {
	// ProjectID identifies the Firebase project. May be empty when the
	// service account file carries it.
	ProjectID string

	// CredentialsFile is the path to a service account JSON file. When
	// empty, application default credentials are used.
	CredentialsFile string
}

// Client implements upstream.IdentityProvider and upstream.DocumentStore.
type Client struct {
	auth *auth.Client
	fs   *firestore.Client
}

var (
	_ upstream.IdentityProvider = (*Client)(nil)
	_ upstream.DocumentStore    = (*Client)(nil)
)

// Dial initializes the Firebase app and its Auth and Firestore clients.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var appCfg *fb.Config
	if cfg.ProjectID != "" {
		appCfg = &fb.Config{ProjectID: cfg.ProjectID}
	}

	app, err := fb.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}

	return &Client{auth: authClient, fs: fsClient}, nil
}

// Close releases the underlying Firestore connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

// VerifyToken validates a Firebase ID token and returns its UID.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	tok, err := c.auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return tok.UID, nil
}

// CreateCredential creates a Firebase Authentication user.
func (c *Client) CreateCredential(ctx context.Context, email, password string, disabled bool) (string, error) {
	rec, err := c.auth.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		Disabled(disabled))
	if err != nil {
		return "", err
	}
	return rec.UID, nil
}

// DeleteCredential removes a Firebase Authentication user.
func (c *Client) DeleteCredential(ctx context.Context, uid string) error {
	return c.auth.DeleteUser(ctx, uid)
}

// UpdateCredential applies a partial update to a Firebase Authentication user.
func (c *Client) UpdateCredential(ctx context.Context, uid string, upd upstream.CredentialUpdate) error {
	u := &auth.UserToUpdate{}
	if upd.Disabled != nil {
		u = u.Disabled(*upd.Disabled)
	}
	_, err := c.auth.UpdateUser(ctx, uid, u)
	return err
}

// GetDocument reads a Firestore document, mapping absence to upstream.ErrNotFound.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	snap, err := c.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, upstream.ErrNotFound
		}
		return nil, err
	}
	return snap.Data(), nil
}

// SetDocument creates or fully replaces a Firestore document.
func (c *Client) SetDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := c.fs.Collection(collection).Doc(id).Set(ctx, fields)
	return err
}

// UpdateDocument applies a partial update to an existing Firestore document.
// Firestore rejects updates to documents that do not exist.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	_, err := c.fs.Collection(collection).Doc(id).Update(ctx, updates)
	return err
}

// DeleteDocument removes a Firestore document. Deleting an absent document
// succeeds, matching Firestore semantics.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	_, err := c.fs.Collection(collection).Doc(id).Delete(ctx)
	return err
}
