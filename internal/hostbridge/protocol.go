// Package hostbridge is the request/response boundary between the document shell and the
// privileged host process that owns the local filesystem. Every call is a typed JSON
// message over HTTP, authenticated with a short-lived bearer token.
package hostbridge

// Routes served by the host process.
const (
	RouteSave         = "/v1/files/save"
	RouteOpenPath     = "/v1/files/open"
	RouteDelete       = "/v1/files/delete"
	RouteOpenExternal = "/v1/open-external"
	RouteHealth       = "/healthz"
)

// SaveRequest carries a file to be written under the host's base directory.
// FileData travels as base64 in JSON.
type SaveRequest struct {
	FileName string `json:"file_name"`
	FileData []byte `json:"file_data"`
}

// SaveResponse reports the absolute path the file was written to.
type SaveResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Error   string `json:"error,omitempty"`
}

type OpenPathRequest struct {
	Path string `json:"path"`
}

// OpenPathResponse has an empty Error on success.
type OpenPathResponse struct {
	Error string `json:"error"`
}

type DeleteRequest struct {
	Path string `json:"path"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type OpenExternalRequest struct {
	URL string `json:"url"`
}

type OpenExternalResponse struct {
	Error string `json:"error"`
}
