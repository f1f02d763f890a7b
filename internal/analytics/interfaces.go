package analytics

import (
	"io"
	"net/http"
)

// Service emits lightweight usage events. Implementations must never block
// the caller and must never surface errors into the request path.
type Service interface {
	Disable()
	Enable()
	EmitEvent(event TrackEvent)
	NewStartupEvent(info StartupEventInfo) TrackEvent
	NewToolEvent(tool, outcome string) TrackEvent
}

// dummy http client interface for our testing purposes
type HTTPClient interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
}
