package envelope

import (
	"encoding/json"
	"io"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusInfo    Status = "info"
	StatusError   Status = "error"
)

// Envelope is the uniform result shape every command prints to stdout.
// `data` is omitted only when nil, an empty collection is still emitted.
type Envelope struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

func Info(message string, data any) Envelope {
	return Envelope{Status: StatusInfo, Message: message, Data: data}
}

func Error(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}

func (e Envelope) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(e)
}

func (e Envelope) String() string {
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		// the envelope only ever carries marshalable values
		return `{"status":"error","message":"failed to encode result"}`
	}
	return string(out)
}
