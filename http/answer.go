package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/docsearch"
)

// DoneFrame is the data payload that ends an event stream.
const DoneFrame = "[DONE]"

// Ensure AnswerClient implements docsearch.Answerer at compile time.
var _ docsearch.Answerer = (*AnswerClient)(nil)

// AnswerClient implements docsearch.Answerer against a remote endpoint that
// accepts {question, context, sources} and replies with {answer}. Streaming
// replies are server-sent events whose data is {"delta": "..."}, ended by
// a [DONE] frame.
type AnswerClient struct {
	client   *Client
	endpoint string
}

// NewAnswerClient creates an AnswerClient. A nil client uses NewClient defaults.
func NewAnswerClient(client *Client, endpoint string) *AnswerClient {
	if client == nil {
		client = NewClient()
	}
	return &AnswerClient{client: client, endpoint: endpoint}
}

// Answer posts req and returns the decoded answer.
func (a *AnswerClient) Answer(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error) {
	resp, err := a.post(ctx, req, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out docsearch.AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "decode answer: %v", err)
	}
	return &out, nil
}

// AnswerStream posts req asking for an event stream and emits one delta per
// data frame.
func (a *AnswerClient) AnswerStream(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.Stream, error) {
	return docsearch.NewStream(ctx, func(ctx context.Context, emit func(string) error) error {
		resp, err := a.post(ctx, req, "text/event-stream")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			data, ok := strings.CutPrefix(scanner.Text(), "data:")
			if !ok {
				continue
			}
			data = strings.TrimSpace(data)
			if data == DoneFrame {
				return nil
			}

			var frame struct {
				Delta string `json:"delta"`
			}
			if err := json.Unmarshal([]byte(data), &frame); err != nil {
				return docsearch.Errorf(docsearch.EUNAVAILABLE, "decode stream frame: %v", err)
			}
			if frame.Delta == "" {
				continue
			}
			if err := emit(frame.Delta); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "stream ended without %s", DoneFrame)
	}), nil
}

func (a *AnswerClient) post(ctx context.Context, req *docsearch.AnswerRequest, accept string) (*http.Response, error) {
	if a.endpoint == "" {
		return nil, docsearch.Errorf(docsearch.ECONFIG, "answer endpoint not configured")
	}

	sources := req.Sources
	if sources == nil {
		sources = []docsearch.Source{}
	}
	body, err := json.Marshal(docsearch.AnswerRequest{
		Question: req.Question,
		Context:  req.Context,
		Sources:  sources,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.ECONFIG, "invalid answer endpoint %q: %v", a.endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)

	resp, err := a.client.do(httpReq)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "post %s: %v", a.endpoint, err)
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}
