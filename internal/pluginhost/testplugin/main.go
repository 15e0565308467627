// Command testplugin is Bark's reference overlay plugin: a stopwatch
// that reports elapsed time since the session started, ported from
// original_source/plugins/stopwatch/src/main.rs into the line-delimited
// JSON protocol internal/pluginhost speaks. It exists to exercise and
// document the protocol end to end, not as user-facing functionality.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Dialect     string `json:"dialect"`
}

type request struct {
	Op string `json:"op"`
}

type response struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Status string `json:"status,omitempty"`
	Close  *bool  `json:"close,omitempty"`
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		json.NewEncoder(os.Stdout).Encode(info{
			Name:        "stopwatch",
			Description: "reports elapsed time since the session started",
			Dialect:     "overlay",
		})
		return
	}

	start := time.Now()
	scanner := bufio.NewScanner(os.Stdin)
	enc := json.NewEncoder(os.Stdout)
	for scanner.Scan() {
		var req request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			enc.Encode(response{OK: false, Error: err.Error()})
			continue
		}
		switch req.Op {
		case "tick":
			enc.Encode(response{OK: true, Status: fmt.Sprintf("%s elapsed", time.Since(start).Round(time.Second))})
		case "quit":
			closeTrue := true
			enc.Encode(response{OK: true, Close: &closeTrue})
			return
		default:
			enc.Encode(response{OK: false, Error: fmt.Sprintf("unknown op %q", req.Op)})
		}
	}
}
