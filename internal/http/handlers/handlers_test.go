package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

func newRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serveRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return serveRequest(r, newRequest(method, path, body))
}
