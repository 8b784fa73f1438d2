package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func sampleDocument() Document {
	return Document{
		Filename: "expenses.csv",
		Header:   []string{"Category", "Amount", "Description", "Date"},
		Rows: [][]string{
			{"Office", "120", "Paper", "2024-03-01"},
			{"Travel", "89.5", "Taxi", "2024-03-02"},
		},
	}
}

func TestDocumentBytes(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t,
		"Category,Amount,Description,Date\nOffice,120,Paper,2024-03-01\nTravel,89.5,Taxi,2024-03-02",
		string(doc.Bytes()))

	empty := Document{Header: []string{"A", "B"}}
	assert.Equal(t, "A,B", string(empty.Bytes()))
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := sampleDocument()
	parsed := Parse(doc.Filename, doc.Bytes())
	assert.Equal(t, doc, parsed)
}

func TestDocumentDoesNotEscape(t *testing.T) {
	doc := Document{Header: []string{"Notes"}, Rows: [][]string{{`say "hi", twice`}}}
	assert.Equal(t, "Notes\nsay \"hi\", twice", string(doc.Bytes()))
}

func TestDocumentValues(t *testing.T) {
	values := sampleDocument().Values()
	require.Len(t, values, 3)
	assert.Equal(t, []any{"Category", "Amount", "Description", "Date"}, values[0])
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewFileSink(dir, nil)

	path, err := sink.Deliver(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "expenses.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument().Bytes(), data)
}

type fakeS3 struct {
	err    error
	input  *s3.PutObjectInput
	body   []byte
	called int
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.called++
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3SinkWithClient(client, "finance", "exports/2024", nil)

	location, err := sink.Deliver(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "s3://finance/exports/2024/expenses.csv", location)
	assert.Equal(t, "exports/2024/expenses.csv", *client.input.Key)
	assert.Equal(t, "text/csv", *client.input.ContentType)
	assert.Equal(t, sampleDocument().Bytes(), client.body)
}

func TestS3SinkError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	sink := NewS3SinkWithClient(client, "finance", "", nil)

	_, err := sink.Deliver(context.Background(), sampleDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestSheetsConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  SheetsConfig
		wantErr bool
	}{
		{"oauth", SheetsConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "token"}, false},
		{"service account", SheetsConfig{ServiceAccountPath: "/key.json"}, false},
		{"missing auth", SheetsConfig{}, true},
		{"both", SheetsConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "token", ServiceAccountPath: "/key.json"}, true},
		{"negative retries", SheetsConfig{ServiceAccountPath: "/key.json", RetryAttempts: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type sheetsRecorder struct {
	updates [][]any
	paths   []string
	mu      sync.Mutex
}

func (r *sheetsRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, req.Method+" "+req.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	switch {
	case req.Method == http.MethodPut:
		var body sheets.ValueRange
		_ = json.NewDecoder(req.Body).Decode(&body)
		r.updates = append(r.updates, body.Values...)
		_, _ = io.WriteString(w, `{"updatedRows":3}`)
	case strings.HasSuffix(req.URL.Path, ":clear"):
		_, _ = io.WriteString(w, `{}`)
	default:
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1"}`)
	}
}

func TestSheetsSinkDeliver(t *testing.T) {
	recorder := &sheetsRecorder{}
	server := httptest.NewServer(recorder)
	defer server.Close()

	ctx := context.Background()
	srv, err := sheets.NewService(ctx,
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	config := DefaultSheetsConfig()
	config.SpreadsheetID = "sheet-1"
	config.RetryDelay = time.Millisecond
	sink := NewSheetsSinkWithService(srv, config, nil)

	id, err := sink.Deliver(ctx, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", id)

	require.Len(t, recorder.updates, 3)
	assert.Equal(t, []any{"Office", "120", "Paper", "2024-03-01"}, recorder.updates[1])
	assert.Contains(t, recorder.paths[0], "/v4/spreadsheets/sheet-1")
}
