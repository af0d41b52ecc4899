package output

import (
	"github.com/example/hopstack/internal/history"
	"github.com/example/hopstack/internal/model"
)

// JSONFormatter provides JSON output for scripting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// chainPayload is the JSON shape for chain output.
type chainPayload struct {
	Name  string      `json:"name"`
	Hops  []model.Hop `json:"hops"`
	Count int         `json:"count"`
}

// historyItemPayload is the JSON shape for one timeline row.
type historyItemPayload struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Type        string `json:"type"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	InPast      bool   `json:"in_past"`
	Current     bool   `json:"current"`
}

// PrintChain prints the chain as JSON.
func (j *JSONFormatter) PrintChain(chain *model.Chain) error {
	payload := chainPayload{Name: "", Hops: []model.Hop{}}
	if chain != nil {
		payload.Name = chain.Name
		payload.Hops = chain.Hops
		payload.Count = len(chain.Hops)
	}
	return j.JSON(payload)
}

// PrintHistory prints the combined timeline as JSON.
func (j *JSONFormatter) PrintHistory(items []history.TimelineItem) error {
	payload := make([]historyItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, historyItemPayload{
			Index:       item.Index,
			ID:          item.Record.ID,
			Type:        string(item.Record.Type),
			Scope:       string(item.Record.Scope),
			Description: item.Record.Description,
			Timestamp:   item.Record.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			InPast:      item.IsInPast,
			Current:     item.IsCurrent,
		})
	}
	return j.JSON(payload)
}

// PrintResult prints a status/message pair.
func (j *JSONFormatter) PrintResult(status, message string) error {
	return j.JSON(map[string]string{
		"status":  status,
		"message": message,
	})
}

// PrintError prints an error with an optional suggestion.
func (j *JSONFormatter) PrintError(status, message, suggestion string) error {
	payload := map[string]string{
		"status":  status,
		"message": message,
	}
	if suggestion != "" {
		payload["suggestion"] = suggestion
	}
	return j.JSON(payload)
}
