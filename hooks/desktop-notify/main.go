// Command desktop-notify is an example hook. It posts a desktop notification
// when the tree starts or stops sparkling.
//
// Install by copying this directory, with the built binary and hook.json,
// into ~/.glimmer/hooks/.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ncruces/zenity"
)

// Request mirrors the JSON written to a hook's stdin.
type Request struct {
	Event  string          `json:"event"`
	Mode   string          `json:"mode"`
	Config json.RawMessage `json:"config"`
}

// Response is written to stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type config struct {
	Title string `json:"title"`
}

// messages maps events to notification text. A %s is replaced by the mode.
var messages = map[string]string{
	"hand-found":    "Hand detected",
	"hand-lost":     "Hand lost",
	"mode-changed":  "Switched to %s mode",
	"magic-started": "Creating magic in %s mode",
	"magic-stopped": "The magic settles",
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(fmt.Errorf("decode request: %w", err))
		return
	}

	format, ok := messages[req.Event]
	if !ok {
		writeResponse(fmt.Errorf("unknown event: %s", req.Event))
		return
	}

	cfg := config{Title: "Glimmer"}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			writeResponse(fmt.Errorf("decode config: %w", err))
			return
		}
	}

	text := format
	if strings.Contains(format, "%s") {
		text = fmt.Sprintf(format, req.Mode)
	}
	writeResponse(zenity.Notify(text, zenity.Title(cfg.Title), zenity.InfoIcon))
}

func writeResponse(err error) {
	resp := Response{Success: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
