package http

import (
	"context"
	"io"
	"net/http"
)

// PostRequest issues a POST with the given headers and returns the status
// code and the full body. A nil reqBody sends no body.
func PostRequest(ctx context.Context, client *http.Client, url string, headers map[string]string, reqBody io.Reader) (status int, resBody []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return 0, nil, err
	}

	// set headers
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// send request
	res, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err = io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, &ReadError{Err: err}
	}
	return res.StatusCode, resBody, nil
}

// ReadError marks a failure while draining the response body, after the
// server had already answered.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "fail to read response body: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
