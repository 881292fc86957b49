package server

import (
	"fmt"
	"log"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding each message to the
// render's event stream. It is called from the rendering goroutine only.
type WebLogger struct {
	renderID string
	send     func(ConsoleMessage)
}

// NewWebLogger creates a new web logger for a specific render. A nil send
// function only writes to the server log.
func NewWebLogger(renderID string, send func(ConsoleMessage)) core.Logger {
	return &WebLogger{
		renderID: renderID,
		send:     send,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, message)

	if wl.send != nil {
		wl.send(ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
