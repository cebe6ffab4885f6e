package mux

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/room"
	"holdem-server/pkg/texasholdem"
)

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, nil, statusCode)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	assertDo(t, req, respObj, statusCode)
}

func Test_parsePlayerID(t *testing.T) {
	a := assert.New(t)
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	id, err := parsePlayerID(req(""))
	a.NoError(err)
	a.Equal(int64(0), id)

	id, err = parsePlayerID(req("?playerId=3"))
	a.NoError(err)
	a.Equal(int64(3), id)

	_, err = parsePlayerID(req("?playerId=-1"))
	a.EqualError(err, "playerId must be a positive integer")

	_, err = parsePlayerID(req("?playerId=abc"))
	a.EqualError(err, "playerId must be a positive integer")
}

func Test_writeGameError(t *testing.T) {
	a := assert.New(t)

	for err, statusCode := range map[error]int{
		texasholdem.ErrNotYourTurn:         http.StatusBadRequest,
		room.ErrTableNotFound:              http.StatusNotFound,
		room.ErrTableClosed:                http.StatusNotFound,
		&texasholdem.InvariantError{}:      http.StatusInternalServerError,
		errors.New("something went wrong"): http.StatusInternalServerError,
	} {
		w := httptest.NewRecorder()
		writeGameError(w, err)
		a.Equal(statusCode, w.Code, err.Error())

		var resp errorResponse
		a.NoError(json.NewDecoder(w.Body).Decode(&resp))
		a.Equal(statusCode, resp.StatusCode)
	}
}
