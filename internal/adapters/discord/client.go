package discord

// Package discord wraps the Discord REST and OAuth2 endpoints used for
// account linking and role connection sync. It is the only package that knows
// the provider's URLs, headers, and error shapes; everything else depends on
// the ports interfaces.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// maxErrorBody caps how much of a failed response body is kept for diagnostics.
const maxErrorBody = 4 << 10

// Scopes requested during the authorization-code flow.
var oauthScopes = []string{"role_connections.write", "identify"}

// Client implements ports.OAuthFlow and ports.RoleConnectionClient against
// the Discord API.
type Client struct {
	oauth        *oauth2.Config
	apiBase      string
	clientID     string
	botToken     string
	platformName string
	httpClient   *http.Client
}

// ClientConfig holds configuration for the Discord client.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BotToken     string
	AuthorizeURL string
	APIBaseURL   string
	PlatformName string
	HTTPClient   *http.Client // Optional, defaults to a client with a bounded timeout
}

// NewClient creates a new Discord client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURI == "" {
		return nil, errors.New("redirect URI is required")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	apiBase := strings.TrimSuffix(cfg.APIBaseURL, "/")
	authorizeURL := cfg.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = apiBase + "/oauth2/authorize"
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       oauthScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase:      apiBase,
		clientID:     cfg.ClientID,
		botToken:     cfg.BotToken,
		platformName: cfg.PlatformName,
		httpClient:   httpClient,
	}, nil
}

// AuthorizationURL builds the user-facing authorization URL carrying state.
// prompt=consent forces the grant screen so re-linking always round-trips.
func (c *Client) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code string) (ports.TokenGrant, error) {
	if code == "" {
		return ports.TokenGrant{}, apperrors.Validation("authorization code is required")
	}

	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return ports.TokenGrant{}, mapOAuthError("exchange code", err)
	}
	return grantFromToken(tok), nil
}

// Refresh trades a refresh token for a fresh grant.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (ports.TokenGrant, error) {
	if refreshToken == "" {
		return ports.TokenGrant{}, apperrors.Validation("refresh token is required")
	}

	src := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return ports.TokenGrant{}, mapOAuthError("refresh token", err)
	}
	return grantFromToken(tok), nil
}

// FetchIdentity resolves the identity behind the credential. With a bot token
// it performs an administrative lookup by ID; otherwise it performs a bearer
// self-lookup where the user object is nested under "user".
func (c *Client) FetchIdentity(ctx context.Context, cred ports.IdentityCredential) (linkage.Identity, error) {
	var (
		endpoint string
		auth     string
		nested   bool
	)
	switch {
	case cred.BotToken != "":
		if cred.UserID == "" {
			return linkage.Identity{}, apperrors.Validation("user ID is required for bot lookup")
		}
		endpoint = c.apiBase + "/users/" + url.PathEscape(cred.UserID)
		auth = "Bot " + cred.BotToken
	case cred.BearerToken != "":
		endpoint = c.apiBase + "/oauth2/@me"
		auth = "Bearer " + cred.BearerToken
		nested = true
	default:
		return linkage.Identity{}, apperrors.Validation("identity credential is required")
	}

	var payload struct {
		linkage.Identity
		User *linkage.Identity `json:"user"`
	}
	if err := c.doJSON(ctx, jsonRequest{Method: http.MethodGet, URL: endpoint, Auth: auth, Op: "fetch identity"}, &payload); err != nil {
		return linkage.Identity{}, err
	}

	identity := payload.Identity
	if nested {
		if payload.User == nil {
			return linkage.Identity{}, apperrors.MalformedIdentity("identity payload missing user object")
		}
		identity = *payload.User
	}
	if identity.ID == "" || identity.Username == "" {
		return linkage.Identity{}, apperrors.MalformedIdentity("identity payload missing id or username")
	}
	return identity, nil
}

// PushRoleConnection replaces the remote role connection record wholesale.
func (c *Client) PushRoleConnection(ctx context.Context, accessToken string, conn linkage.RoleConnection) error {
	if conn.PlatformName == "" {
		conn.PlatformName = c.platformName
	}
	req := jsonRequest{
		Method: http.MethodPut,
		URL:    c.roleConnectionURL(),
		Auth:   "Bearer " + accessToken,
		Body:   conn,
		Op:     "push role connection",
	}
	return c.doJSON(ctx, req, nil)
}

// RoleConnection fetches the current remote role connection record.
func (c *Client) RoleConnection(ctx context.Context, accessToken string) (linkage.RoleConnection, error) {
	var conn linkage.RoleConnection
	req := jsonRequest{
		Method: http.MethodGet,
		URL:    c.roleConnectionURL(),
		Auth:   "Bearer " + accessToken,
		Op:     "get role connection",
	}
	if err := c.doJSON(ctx, req, &conn); err != nil {
		return linkage.RoleConnection{}, err
	}
	return conn, nil
}

// RegisterMetadataSchema registers the application's role connection metadata
// schema. Requires the bot token; intended for the admin CLI.
func (c *Client) RegisterMetadataSchema(ctx context.Context, fields []linkage.MetadataField) ([]linkage.MetadataField, error) {
	if c.botToken == "" {
		return nil, apperrors.Validation("bot token is required to register metadata")
	}
	var out []linkage.MetadataField
	req := jsonRequest{
		Method: http.MethodPut,
		URL:    c.metadataSchemaURL(),
		Auth:   "Bot " + c.botToken,
		Body:   fields,
		Op:     "register metadata schema",
	}
	if err := c.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MetadataSchema fetches the currently registered metadata schema.
func (c *Client) MetadataSchema(ctx context.Context) ([]linkage.MetadataField, error) {
	if c.botToken == "" {
		return nil, apperrors.Validation("bot token is required to read metadata")
	}
	var out []linkage.MetadataField
	req := jsonRequest{
		Method: http.MethodGet,
		URL:    c.metadataSchemaURL(),
		Auth:   "Bot " + c.botToken,
		Op:     "get metadata schema",
	}
	if err := c.doJSON(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlatformName returns the platform_name asserted in pushes.
func (c *Client) PlatformName() string { return c.platformName }

func (c *Client) roleConnectionURL() string {
	return c.apiBase + "/users/@me/applications/" + url.PathEscape(c.clientID) + "/role-connection"
}

func (c *Client) metadataSchemaURL() string {
	return c.apiBase + "/applications/" + url.PathEscape(c.clientID) + "/role-connections/metadata"
}

// oauthContext routes x/oauth2's internal HTTP calls through our client so
// the bounded timeout applies to token grants too.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// jsonRequest groups parameters for doJSON.
type jsonRequest struct {
	Method string
	URL    string
	Auth   string
	Body   any
	Op     string
}

// doJSON performs a JSON request against the API and decodes the response
// into out (ignored when nil). Non-JSON responses map to InvalidResponse,
// non-2xx statuses to RemoteAuth with status and body preserved.
func (c *Client) doJSON(ctx context.Context, req jsonRequest, out any) error {
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return apperrors.Internal("encode request body", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return apperrors.Internal("build request", err)
	}
	httpReq.Header.Set("Authorization", req.Auth)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.Internal(req.Op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("%s: read response", req.Op), err)
	}

	// An HTML error page from a proxy is an invalid response, not an auth
	// failure; check the content type before the status code.
	if !isJSONContentType(resp.Header.Get("Content-Type")) && len(raw) > 0 {
		return apperrors.InvalidResponse(
			fmt.Sprintf("%s: unexpected content type %q", req.Op, resp.Header.Get("Content-Type")),
			errors.New(string(raw)),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Remote(req.Op, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperrors.InvalidResponse(fmt.Sprintf("%s: decode response", req.Op), err)
		}
	}
	return nil
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// grantFromToken converts an oauth2 token into the port grant shape.
func grantFromToken(tok *oauth2.Token) ports.TokenGrant {
	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		// The provider always reports expires_in; guard anyway so a missing
		// field never yields an immortal token.
		expiresAt = time.Now().Add(time.Hour)
	}
	return ports.TokenGrant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

// mapOAuthError converts x/oauth2 failures, preserving the provider status
// and body when the token endpoint answered with a non-success status.
func mapOAuthError(op string, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return apperrors.Remote(op, retrieveErr.Response.StatusCode, string(retrieveErr.Body))
	}
	return apperrors.Internal(op, err)
}
