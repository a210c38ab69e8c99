package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/packtrack/internal/logging"
)

// fakeCreds implements Credentials with scripted behavior.
type fakeCreds struct {
	token      string
	refreshErr error

	refreshCalls atomic.Int32
	// newToken is installed when a refresh succeeds
	newToken string
}

func (f *fakeCreds) Token() string { return f.token }

func (f *fakeCreds) Refresh(ctx context.Context) error {
	f.refreshCalls.Add(1)
	if f.refreshErr != nil {
		f.token = ""
		return f.refreshErr
	}
	f.token = f.newToken
	return nil
}

func okEnvelope(data string) string {
	if data == "" {
		return `{"success":true,"message":"ok"}`
	}
	return fmt.Sprintf(`{"success":true,"message":"ok","data":%s}`, data)
}

func TestCall_AttachesAuthAndContentType(t *testing.T) {
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		fmt.Fprint(w, okEnvelope(""))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(&fakeCreds{token: "tok-1"})

	require.NoError(t, gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "application/json", gotType)
}

func TestCall_NoSession_NoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, okEnvelope(""))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(&fakeCreds{token: ""})

	require.NoError(t, gw.Call(context.Background(), http.MethodGet, "/getboxes", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestCall_DecodesEnvelopeData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, okEnvelope(`{"items":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	var out struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, &out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "a", out.Items[0].ID)
}

func TestCall_Unauthorized_RefreshesOnceAndRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"message":"token expired"}`)
			return
		}
		fmt.Fprint(w, okEnvelope(""))
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale", newToken: "fresh"}
	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(creds)

	require.NoError(t, gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil))
	assert.Equal(t, int32(2), calls.Load(), "original request plus exactly one retry")
	assert.Equal(t, int32(1), creds.refreshCalls.Load())
}

func TestCall_RetryResultIsFinal(t *testing.T) {
	// The retry also fails with 401: no second refresh, no third attempt.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"message":"still no"}`)
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale", newToken: "fresh"}
	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(creds)

	err := gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int32(1), creds.refreshCalls.Load())
}

func TestCall_RefreshFails_PropagatesOriginalError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"message":"token expired"}`)
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale", refreshErr: ErrUnauthorized}
	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(creds)

	err := gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")
	assert.Equal(t, int32(1), calls.Load(), "no retry after a failed refresh")
}

func TestCall_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"item not found"}`)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodDelete, "/deleteitem/zzz", nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "item not found", err.Error())
}

func TestCall_ValidationMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"message":"quantity must be non-negative"}`)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodPost, "/senditemdata", map[string]int{"quantity": -1}, nil)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "quantity must be non-negative", err.Error())
}

func TestCall_ErrorWithoutMessage_GenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCall_SuccessFalseOn2xx_IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"nothing to pack"}`)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodPost, "/optimal-packing2", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "nothing to pack", err.Error())
}

func TestCall_NetworkFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nobody is listening anymore

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCallNoAuth_SkipsBearerAndRetry(t *testing.T) {
	var calls atomic.Int32
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"message":"bad refresh token"}`)
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "tok"}
	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(creds)

	err := gw.CallNoAuth(context.Background(), http.MethodPost, "/refresh-token", map[string]string{"refresh_token": "r"}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, gotAuth)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(0), creds.refreshCalls.Load())
}

func TestUpload_MultipartBodySurvivesRetry(t *testing.T) {
	var calls atomic.Int32
	var lastFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"message":"token expired"}`)
			return
		}
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		lastFile = hdr.Filename

		b, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "fake-image-bytes", string(b))

		fmt.Fprint(w, okEnvelope(`{"dimensions":{"length":10,"breadth":5,"height":2}}`))
	}))
	defer srv.Close()

	creds := &fakeCreds{token: "stale", newToken: "fresh"}
	gw := NewGateway(srv.URL, time.Second, logging.Nop())
	gw.BindCredentials(creds)

	var out struct {
		Dimensions struct {
			Length float64 `json:"length"`
		} `json:"dimensions"`
	}
	err := gw.Upload(context.Background(), "/ai/predict-dimensions", "image", "shot.jpg",
		strings.NewReader("fake-image-bytes"), map[string]string{"note": "test"}, &out)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "shot.jpg", lastFile)
	assert.Equal(t, 10.0, out.Dimensions.Length)
}

func TestStatusError_Unwrap(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusConflict, ErrValidation},
	}
	for _, tt := range tests {
		err := &StatusError{Code: tt.code, Message: "m"}
		assert.ErrorIs(t, err, tt.want, "status %d", tt.code)
	}
}

func TestCall_MalformedSuccessBody_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":`)
	}))
	defer srv.Close()

	gw := NewGateway(srv.URL, time.Second, logging.Nop())

	err := gw.Call(context.Background(), http.MethodGet, "/getitemdata", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMarshalBody_RejectsUnencodable(t *testing.T) {
	_, err := marshalBody(json.RawMessage(nil))
	require.NoError(t, err) // RawMessage(nil) encodes as null

	_, err = marshalBody(make(chan int))
	require.Error(t, err)
}
