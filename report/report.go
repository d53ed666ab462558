package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/skillsenselab/callscore/analysis"
	"github.com/skillsenselab/callscore/attribution"
	"github.com/skillsenselab/callscore/logger"
	"github.com/skillsenselab/callscore/scoring"
	"github.com/skillsenselab/callscore/storage"
)

// Artifact file names written per call.
const (
	FileTranscript = "transcript.txt"
	FileAnalysis   = "analysis.json"
	FileCSV        = "report.csv"
	FileHTML       = "report.html"
)

// Report is everything known about one analyzed call.
type Report struct {
	CallID     string                      `json:"call_id"`
	Timestamp  time.Time                   `json:"timestamp"`
	AudioPath  string                      `json:"audio_path"`
	Transcript string                      `json:"transcript"`
	Turns      []attribution.Turn          `json:"turns"`
	Roles      map[string]attribution.Role `json:"roles"`
	Strategy   string                      `json:"role_strategy"`
	Intent     string                      `json:"intent"`
	Sentiment  analysis.Sentiment          `json:"sentiment"`
	Tone       analysis.Tone               `json:"speech_emotion"`
	Entities   analysis.Entities           `json:"entities"`
	Scores     scoring.Card                `json:"scores"`
}

// Exporter writes a call report's artifacts to a storage backend. Each
// call's files land under a directory named by its call ID.
type Exporter struct {
	store storage.Storage
	log   *logger.Logger
}

// NewExporter creates a report exporter.
func NewExporter(store storage.Storage) *Exporter {
	return &Exporter{
		store: store,
		log:   logger.Get("report").WithComponent("exporter"),
	}
}

// Export writes the transcript, JSON analysis, CSV summary, and HTML
// report for one call.
func (e *Exporter) Export(ctx context.Context, rep *Report) error {
	artifacts := []struct {
		name   string
		render func(*Report) ([]byte, error)
	}{
		{FileTranscript, renderTranscript},
		{FileAnalysis, renderJSON},
		{FileCSV, renderCSV},
		{FileHTML, renderHTML},
	}

	for _, a := range artifacts {
		data, err := a.render(rep)
		if err != nil {
			return fmt.Errorf("render %s: %w", a.name, err)
		}
		dst := path.Join(rep.CallID, a.name)
		if err := e.store.Upload(ctx, dst, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write %s: %w", a.name, err)
		}
		e.log.Debug("artifact written", logger.Fields(
			logger.FieldCallID, rep.CallID,
			"artifact", dst,
		))
	}
	return nil
}

func renderTranscript(rep *Report) ([]byte, error) {
	return []byte(rep.Transcript), nil
}

func renderJSON(rep *Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

func renderCSV(rep *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"call_id", "timestamp", "intent",
		"amounts", "dates", "modes",
		"listening", "communication", "persuasion", "outcome",
		"text_sentiment", "speech_emotion",
	}
	row := []string{
		rep.CallID,
		rep.Timestamp.UTC().Format(time.RFC3339),
		rep.Intent,
		strings.Join(rep.Entities.Amounts, "|"),
		strings.Join(rep.Entities.Dates, "|"),
		strings.Join(rep.Entities.Modes, "|"),
		strconv.Itoa(rep.Scores.Listening),
		strconv.Itoa(rep.Scores.Communication),
		strconv.Itoa(rep.Scores.Persuasion),
		strconv.Itoa(rep.Scores.Outcome),
		rep.Sentiment.Label,
		rep.Tone.Pretty,
	}

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"orDash": func(items []string) string {
		if len(items) == 0 {
			return "-"
		}
		return strings.Join(items, ", ")
	},
	"roleOf": func(r attribution.Role) string {
		if r == attribution.RoleUnknown {
			return "undetermined"
		}
		return string(r)
	},
}).Parse(`<html>
<head>
  <meta charset="utf-8">
  <title>Call Analysis</title>
</head>
<body>
<h1>Call Analysis Report</h1>
<p><b>Call:</b> {{.CallID}}</p>
<p><b>Timestamp:</b> {{.Timestamp.UTC.Format "2006-01-02T15:04:05Z07:00"}}</p>

<h2>Intent: {{.Intent}}</h2>

<h3>Text Sentiment</h3>
<p>{{.Sentiment.Label}} ({{printf "%.2f" .Sentiment.Score}})</p>

<h3>Speech Emotion (Tone)</h3>
<p>{{.Tone.Pretty}} ({{printf "%.2f" .Tone.Score}})</p>

<h3>Entities</h3>
<ul>
<li>Amounts: {{orDash .Entities.Amounts}}</li>
<li>Dates: {{orDash .Entities.Dates}}</li>
<li>Modes: {{orDash .Entities.Modes}}</li>
</ul>

<h3>Scores</h3>
<ul>
<li>Listening: {{.Scores.Listening}}</li>
<li>Communication: {{.Scores.Communication}}</li>
<li>Persuasion: {{.Scores.Persuasion}}</li>
<li>Outcome: {{.Scores.Outcome}}</li>
</ul>

<h3>Turns</h3>
<table border="1" cellpadding="4">
<tr><th>Speaker</th><th>Role</th><th>Start</th><th>End</th><th>Confidence</th><th>Text</th></tr>
{{range .Turns}}<tr><td>{{.SpeakerID}}</td><td>{{roleOf .Role}}</td><td>{{printf "%.1f" .Start}}</td><td>{{printf "%.1f" .End}}</td><td>{{printf "%.2f" .Confidence}}</td><td>{{.Text}}</td></tr>
{{end}}</table>

<h3>Transcript</h3>
<pre style="white-space: pre-wrap; font-family: monospace;">{{.Transcript}}</pre>
</body>
</html>
`))

func renderHTML(rep *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, rep); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
