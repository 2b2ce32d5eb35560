package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/equinor/radix-training-console/api/controllers"
	"github.com/equinor/radix-training-console/internal/config"
	"github.com/equinor/radix-training-console/router"
)

type ControllerTestUtils struct {
	controllers []controllers.Controller
}

func New(controllers ...controllers.Controller) ControllerTestUtils {
	return ControllerTestUtils{
		controllers: controllers,
	}
}

// ExecuteRequest Helper method to issue a http request
func (ctrl *ControllerTestUtils) ExecuteRequest(ctx context.Context, method, path string) <-chan *http.Response {
	return ctrl.ExecuteRequestWithBody(ctx, method, path, nil)
}

// ExecuteRequestWithBody Helper method to issue a http request with a JSON payload
func (ctrl *ControllerTestUtils) ExecuteRequestWithBody(ctx context.Context, method, path string, body interface{}) <-chan *http.Response {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	return ctrl.ExecuteRequestWithReader(ctx, method, path, reader)
}

// ExecuteRequestWithReader Helper method to issue a http request with a raw payload
func (ctrl *ControllerTestUtils) ExecuteRequestWithReader(ctx context.Context, method, path string, body io.Reader) <-chan *http.Response {
	responseChan := make(chan *http.Response)

	go func() {
		defer close(responseChan)
		handler := router.NewServer(&config.Config{}, ctrl.controllers...)
		server := httptest.NewServer(handler)
		defer server.Close()
		request, err := http.NewRequestWithContext(ctx, method, buildURLFromServer(server, path), body)
		if err != nil {
			return
		}
		response, err := http.DefaultClient.Do(request)
		if err != nil {
			return
		}
		responseBody, _ := io.ReadAll(response.Body)
		_ = response.Body.Close()
		response.Body = io.NopCloser(bytes.NewReader(responseBody))
		responseChan <- response
	}()

	return responseChan
}

// GetResponseBody Gets response payload as type
func GetResponseBody(response *http.Response, target interface{}) error {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}

func buildURLFromServer(server *httptest.Server, path string) string {
	serverURL, _ := url.Parse(server.URL)
	requestURL, _ := url.Parse(path)
	serverURL.Path = requestURL.Path
	serverURL.RawQuery = requestURL.RawQuery
	return serverURL.String()
}

// RequestContextMatcher matches the context of a request passed to a handler
type RequestContextMatcher struct {
}

func (m RequestContextMatcher) Matches(x interface{}) bool {
	_, ok := x.(context.Context)
	return ok
}

func (m RequestContextMatcher) String() string {
	return fmt.Sprintf("is %T", (*context.Context)(nil))
}
