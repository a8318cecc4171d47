package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem type URIs (RFC 7807 "type" member).
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeTimeout          = "/errors/timeout"
	TypePayloadTooLarge  = "/errors/payload-too-large"
	TypeMethodNotAllowed = "/errors/method-not-allowed"
	TypeUnsupportedMedia = "/errors/unsupported-media-type"

	TypeCategoryNotFound = "/errors/dre/category-not-found"
	TypeAccountNotFound  = "/errors/dre/account-not-found"
	TypeStatementInvalid = "/errors/dre/statement-invalid"
	TypeConfiguration    = "/errors/configuration"
)

// problemKind fixes the type, title and status of one family of failures.
type problemKind struct {
	typ    string
	title  string
	status int
}

var (
	kindValidation       = problemKind{TypeValidation, "Validation Failed", http.StatusBadRequest}
	kindNotFound         = problemKind{TypeNotFound, "Not Found", http.StatusNotFound}
	kindInternal         = problemKind{TypeInternal, "Internal Server Error", http.StatusInternalServerError}
	kindTimeout          = problemKind{TypeTimeout, "Request Timeout", http.StatusGatewayTimeout}
	kindPayloadTooLarge  = problemKind{TypePayloadTooLarge, "Payload Too Large", http.StatusRequestEntityTooLarge}
	kindMethodNotAllowed = problemKind{TypeMethodNotAllowed, "Method Not Allowed", http.StatusMethodNotAllowed}
	kindCategoryNotFound = problemKind{TypeCategoryNotFound, "Category Not Found", http.StatusNotFound}
	kindAccountNotFound  = problemKind{TypeAccountNotFound, "Account Not Found", http.StatusUnprocessableEntity}
	kindStatementInvalid = problemKind{TypeStatementInvalid, "Statement Invalid", http.StatusUnprocessableEntity}
	kindConfiguration    = problemKind{TypeConfiguration, "Configuration Error", http.StatusInternalServerError}
)

func (k problemKind) problem(detail, instance string) *ProblemDetails {
	return NewProblemDetails(k.status, k.typ, k.title, detail, instance)
}

// ProblemDetails is an RFC 7807 error body.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions sit next to the standard members in the JSON object and
	// never replace them.
	Extensions map[string]interface{} `json:"-"`
}

// NewProblemDetails builds a problem with no extensions.
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: map[string]interface{}{},
	}
}

// WithExtension sets one extension member and returns pd for chaining.
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	if pd.Extensions == nil {
		pd.Extensions = map[string]interface{}{}
	}
	pd.Extensions[key] = value
	return pd
}

// Render sets the response status for chi/render.
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	body := make(map[string]interface{}, len(pd.Extensions)+5)
	for k, v := range pd.Extensions {
		body[k] = v
	}
	body["type"] = pd.Type
	body["title"] = pd.Title
	body["status"] = pd.Status
	if pd.Detail != "" {
		body["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		body["instance"] = pd.Instance
	}
	return json.Marshal(body)
}
