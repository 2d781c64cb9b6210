package apidog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	apidogsync "github.com/akhelij/apidog-sync-mcp-server"
	"github.com/akhelij/apidog-sync-mcp-server/catalog"
)

const (
	// DefaultBaseURL is the public Apidog API endpoint.
	DefaultBaseURL = "https://api.apidog.com"
	// DefaultAPIVersion is the Apidog API version header value this client
	// is written against.
	DefaultAPIVersion = "2024-03-28"

	defaultTimeout = 30 * time.Second

	// maxResponseSize caps response bodies at 50 MiB; catalog exports are
	// large but bounded.
	maxResponseSize = 50 << 20
)

// Client calls the Apidog project API. All methods are safe for concurrent
// use; the zero value is not usable, construct with New.
type Client struct {
	// BaseURL of the Apidog API, without trailing slash.
	BaseURL string
	// Token is the personal access token sent as a Bearer credential.
	Token string
	// ProjectID identifies the project to export from and import into.
	ProjectID string
	// APIVersion is sent as the X-Apidog-Api-Version header.
	APIVersion string
	// UserAgent overrides the default User-Agent when set.
	UserAgent string
	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client
}

// New creates a Client for the given project with default settings.
func New(token, projectID string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		ProjectID:  projectID,
		APIVersion: DefaultAPIVersion,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ExportOptions configures an export call.
type ExportOptions struct {
	// OASVersion selects the OpenAPI version of the export (default "3.1").
	OASVersion string
	// ExcludeExtensions drops the x-apidog-* extension properties from the
	// export. The reorganizer needs them, so the default is to include.
	ExcludeExtensions bool
}

// exportRequest is the wire shape of the export-openapi call.
type exportRequest struct {
	Scope struct {
		Type string `json:"type"`
	} `json:"scope"`
	Options struct {
		IncludeApidogExtensionProperties bool `json:"includeApidogExtensionProperties"`
		AddFoldersToTags                 bool `json:"addFoldersToTags"`
	} `json:"options"`
	OASVersion   string `json:"oasVersion"`
	ExportFormat string `json:"exportFormat"`
}

// ExportOpenAPI exports the whole project as an OpenAPI document and
// decodes it into a catalog document.
func (c *Client) ExportOpenAPI(ctx context.Context, opts ExportOptions) (*catalog.Document, error) {
	oasVersion := opts.OASVersion
	if oasVersion == "" {
		oasVersion = "3.1"
	}

	var req exportRequest
	req.Scope.Type = "ALL"
	req.Options.IncludeApidogExtensionProperties = !opts.ExcludeExtensions
	req.OASVersion = oasVersion
	req.ExportFormat = "JSON"

	body, err := c.post(ctx, fmt.Sprintf("/v1/projects/%s/export-openapi", c.ProjectID), req)
	if err != nil {
		return nil, fmt.Errorf("exporting project %s: %w", c.ProjectID, err)
	}

	doc, err := catalog.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding export of project %s: %w", c.ProjectID, err)
	}
	return doc, nil
}

// ImportOptions configures an import call.
type ImportOptions struct {
	// OverwriteBehavior controls how colliding endpoints are handled
	// (default "OVERWRITE_EXISTING").
	OverwriteBehavior string
}

// ImportCounters are the remote catalog's counts of what the import did.
type ImportCounters struct {
	EndpointCreated int `json:"endpointCreated"`
	EndpointUpdated int `json:"endpointUpdated"`
	EndpointFailed  int `json:"endpointFailed"`
	FolderCreated   int `json:"endpointFolderCreated"`
	FolderUpdated   int `json:"endpointFolderUpdated"`
	SchemaCreated   int `json:"schemaCreated"`
	SchemaUpdated   int `json:"schemaUpdated"`
}

// ImportResult is the outcome of an import call.
type ImportResult struct {
	Counters ImportCounters `json:"counters"`
}

// importRequest is the wire shape of the import-openapi call. The document
// travels as a serialized string in the input field.
type importRequest struct {
	Input   string `json:"input"`
	Options struct {
		EndpointOverwriteBehavior string `json:"endpointOverwriteBehavior"`
	} `json:"options"`
}

type importResponse struct {
	Data ImportResult `json:"data"`
}

// ImportOpenAPI writes a catalog document back to the project. The
// document is serialized as JSON regardless of the format it arrived in;
// the remote side accepts either.
func (c *Client) ImportOpenAPI(ctx context.Context, doc *catalog.Document, opts ImportOptions) (*ImportResult, error) {
	data, err := doc.Marshal(catalog.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("serializing document for import: %w", err)
	}

	behavior := opts.OverwriteBehavior
	if behavior == "" {
		behavior = "OVERWRITE_EXISTING"
	}

	var req importRequest
	req.Input = string(data)
	req.Options.EndpointOverwriteBehavior = behavior

	body, err := c.post(ctx, fmt.Sprintf("/v1/projects/%s/import-openapi", c.ProjectID), req)
	if err != nil {
		return nil, fmt.Errorf("importing into project %s: %w", c.ProjectID, err)
	}

	var resp importResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding import response: %w", err)
	}
	return &resp.Data, nil
}

// post issues an authenticated POST with a JSON body and returns the
// response body. Non-2xx responses become errors carrying the status and
// a response excerpt.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-Apidog-Api-Version", c.APIVersion)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("User-Agent", c.userAgent())

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("apidog API returned %s: %s", resp.Status, excerpt(body))
	}
	return body, nil
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return apidogsync.UserAgent()
}

// excerpt trims an error response body for inclusion in an error message.
func excerpt(body []byte) string {
	const maxLen = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
